package redisstore

import (
	"context"
	"time"

	"github.com/wyfcoding/artsfoundation/internal/checkout/domain"
	"github.com/wyfcoding/artsfoundation/pkg/cache"
)

const keyPrefix = "checkout:session:"

// SessionStore Redis 结账会话存储；TTL 由 Redis 过期机制承担，多实例共享
type SessionStore struct {
	cache *cache.RedisCache
	ttl   time.Duration
}

func NewSessionStore(c *cache.RedisCache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: c, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	return s.cache.SetJSON(ctx, keyPrefix+session.ID, session, s.ttl)
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession
	found, err := s.cache.GetJSON(ctx, keyPrefix+id, &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, keyPrefix+id)
}
