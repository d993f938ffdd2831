package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Subscription 邮件订阅记录，邮箱唯一
type Subscription struct {
	gorm.Model
	Email string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
}

func (Subscription) TableName() string { return "newsletter_subscriptions" }

// NewSubscription 规范化邮箱后构造订阅
func NewSubscription(email string) (*Subscription, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return &Subscription{Email: email}, nil
}

// Repository 订阅仓储接口；Upsert 对重复邮箱幂等
type Repository interface {
	Upsert(ctx context.Context, sub *Subscription) error
}
