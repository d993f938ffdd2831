package domain

import (
	"context"
	"errors"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository 购物车仓储接口
type CartRepository interface {
	// GetBySessionID 按会话 id 取购物车，不存在时返回 ErrCartNotFound
	GetBySessionID(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}
