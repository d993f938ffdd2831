package middleware

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterExhaustsTokens(t *testing.T) {
	rl := NewRateLimiter(3, 0)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow())
	}
	assert.False(t, rl.Allow())
}

func TestRateLimiterConcurrentAllow(t *testing.T) {
	rl := NewRateLimiter(100, 0)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow() {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	// 无补充速率时并发放行数必须恰好等于桶容量
	assert.Equal(t, int64(100), allowed.Load())
}
