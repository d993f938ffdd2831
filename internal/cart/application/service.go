package application

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// CartService 购物车应用服务
type CartService struct {
	repo    domain.CartRepository
	catalog catalogdomain.Repository
}

func NewCartService(repo domain.CartRepository, catalog catalogdomain.Repository) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

// Get 取购物车，不存在时返回空车而非报错
func (s *CartService) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.GetBySessionID(ctx, sessionID)
	if err == domain.ErrCartNotFound {
		return &domain.Cart{SessionID: sessionID}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem 加入商品，价格以商品目录为准，不信任客户端传入的金额
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	product, err := s.catalog.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.AddItem(product.ID, product.Title, product.Artist, product.Image, product.Price)
	if err := s.repo.Save(ctx, cart); err != nil {
		logger.Error(ctx, "failed to save cart", "session_id", sessionID, "error", err)
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity 设置条目数量，数量 ≤ 0 等价于移除
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(productID, quantity)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem 移除条目
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear 清空购物车，支付成功后由结账流程调用
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}
