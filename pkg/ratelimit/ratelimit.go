// Package ratelimit 提供基于 Redis 的分布式限流，多实例部署时共享配额
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// Limit 限流规则
type Limit struct {
	// 周期内允许的请求数
	Rate int
	// 统计周期
	Period time.Duration
	// 突发容量
	Burst int
}

// RedisRateLimiter 基于 redis_rate 的限流器
type RedisRateLimiter struct {
	limiter *redis_rate.Limiter
}

// NewRedisRateLimiter 创建 Redis 限流器
func NewRedisRateLimiter(rdb *redis.Client) *RedisRateLimiter {
	return &RedisRateLimiter{limiter: redis_rate.NewLimiter(rdb)}
}

// Allow 检查 key 在给定规则下是否放行
func (r *RedisRateLimiter) Allow(ctx context.Context, key string, limit Limit) (bool, error) {
	res, err := r.limiter.Allow(ctx, key, redis_rate.Limit{
		Rate:   limit.Rate,
		Period: limit.Period,
		Burst:  limit.Burst,
	})
	if err != nil {
		return false, fmt.Errorf("rate limit check failed: %w", err)
	}
	return res.Allowed > 0, nil
}

// PerClientIP Gin 中间件，按客户端 IP 限流；Redis 故障时放行而不是拒绝
func PerClientIP(r *RedisRateLimiter, limit Limit) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.ClientIP()
		allowed, err := r.Allow(c.Request.Context(), key, limit)
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
