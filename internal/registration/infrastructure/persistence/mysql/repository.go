package mysql

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/registration/domain"
	"gorm.io/gorm"
)

// RSVPRepository RSVP MySQL 仓储实现
type RSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) *RSVPRepository {
	return &RSVPRepository{db: db}
}

func (r *RSVPRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	return r.db.WithContext(ctx).Create(rsvp).Error
}

func (r *RSVPRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.RSVP, error) {
	var rsvps []domain.RSVP
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&rsvps).Error
	return rsvps, err
}
