package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrPaidEvent 付费活动必须走支付流程，RSVP 仅限免费活动
	ErrPaidEvent   = errors.New("event requires payment, RSVP is only for free events")
	ErrInvalidRSVP = errors.New("invalid rsvp")
)

// RSVP 免费活动报名记录
type RSVP struct {
	gorm.Model
	EventID    int64  `gorm:"column:event_id;index;not null" json:"eventId"`
	EventTitle string `gorm:"column:event_title;type:varchar(255)" json:"eventTitle"`
	Name       string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email      string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Attendees  int    `gorm:"column:attendees;not null" json:"attendees"`
}

func (RSVP) TableName() string { return "event_rsvps" }

// Validate 校验报名字段
func (r *RSVP) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRSVP)
	}
	if !strings.Contains(r.Email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidRSVP)
	}
	if r.Attendees < 1 {
		return fmt.Errorf("%w: attendees must be at least 1", ErrInvalidRSVP)
	}
	return nil
}

// Repository RSVP 仓储接口
type Repository interface {
	Create(ctx context.Context, rsvp *RSVP) error
	ListByEvent(ctx context.Context, eventID int64) ([]RSVP, error)
}
