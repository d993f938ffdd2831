package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/artsfoundation/internal/order/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository 订单 MySQL 仓储实现
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create 按意图 id 幂等写入：同一意图重复创建时保留已有记录
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "intent_id"}},
			DoNothing: true,
		}).
		Create(order).Error
}

func (r *OrderRepository) GetByIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).Where("intent_id = ?", intentID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, intentID string, status domain.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("intent_id = ?", intentID).
		Update("status", status).Error
}
