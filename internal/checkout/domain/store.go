package domain

import "context"

// SessionStore 结账会话存储；实现负责按 TTL 过期未完成的会话
type SessionStore interface {
	// Save 写入或覆盖会话并刷新 TTL
	Save(ctx context.Context, session *CheckoutSession) error
	// Get 按 id 取会话，不存在或已过期返回 ErrSessionNotFound
	Get(ctx context.Context, id string) (*CheckoutSession, error)
	Delete(ctx context.Context, id string) error
}
