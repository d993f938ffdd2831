package mysql

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository 订阅 MySQL 仓储实现
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Upsert(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(sub).Error
}
