package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/artsfoundation/internal/cart/domain"
)

// CartRepository 进程内购物车仓储，单实例部署与测试使用
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
}

func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]*domain.Cart)}
}

func (r *CartRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[cart.SessionID] = cloneCart(cart)
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// cloneCart 拷贝后返回，避免调用方修改仓储内部状态
func cloneCart(src *domain.Cart) *domain.Cart {
	dst := *src
	dst.Items = make([]domain.CartItem, len(src.Items))
	copy(dst.Items, src.Items)
	return &dst
}
