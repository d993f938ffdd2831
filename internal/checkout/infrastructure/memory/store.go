package memory

import (
	"context"
	"sync"
	"time"

	"github.com/wyfcoding/artsfoundation/internal/checkout/domain"
)

type entry struct {
	session   *domain.CheckoutSession
	expiresAt time.Time
}

// SessionStore 进程内结账会话存储，带惰性过期与后台清扫
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *SessionStore) Save(ctx context.Context, session *domain.CheckoutSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = entry{session: cloneSession(session), expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(e.session), nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// Close 停止后台清扫
func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *SessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.entries {
				if now.After(e.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func cloneSession(src *domain.CheckoutSession) *domain.CheckoutSession {
	dst := *src
	if src.Donation != nil {
		d := *src.Donation
		dst.Donation = &d
	}
	if src.Registration != nil {
		r := *src.Registration
		dst.Registration = &r
	}
	if src.Cart != nil {
		c := *src.Cart
		c.Lines = make([]domain.CartLineSnapshot, len(src.Cart.Lines))
		copy(c.Lines, src.Cart.Lines)
		if src.Cart.Shipping != nil {
			sh := *src.Cart.Shipping
			c.Shipping = &sh
		}
		dst.Cart = &c
	}
	if src.General != nil {
		g := *src.General
		dst.General = &g
	}
	if src.Completed != nil {
		cp := *src.Completed
		dst.Completed = &cp
	}
	return &dst
}
