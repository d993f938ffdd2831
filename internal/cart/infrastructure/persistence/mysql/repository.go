package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/artsfoundation/internal/cart/domain"
	"gorm.io/gorm"
)

// CartRepository 购物车 MySQL 仓储实现
type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ?", sessionID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save 整卡覆盖写：条目集合以当前快照为准
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(cart).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return nil
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		return tx.Create(&cart.Items).Error
	})
}

func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart domain.Cart
		err := tx.Where("session_id = ?", sessionID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
}
