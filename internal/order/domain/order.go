package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// OrderStatus 订单支付状态
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusSucceeded  OrderStatus = "succeeded"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusFailed     OrderStatus = "failed"
)

var ErrOrderNotFound = errors.New("order not found")

// Order 一次支付尝试的持久化记录，以支付意图 id 幂等
type Order struct {
	gorm.Model
	IntentID      string      `gorm:"column:intent_id;type:varchar(64);uniqueIndex;not null"`
	SessionID     string      `gorm:"column:session_id;type:varchar(36);index;not null"`
	Purpose       string      `gorm:"column:purpose;type:varchar(32);not null"`
	AmountCents   int64       `gorm:"column:amount_cents;not null"`
	Currency      string      `gorm:"column:currency;type:varchar(8);not null"`
	Status        OrderStatus `gorm:"column:status;type:varchar(16);not null;index"`
	CustomerName  string      `gorm:"column:customer_name;type:varchar(255)"`
	CustomerEmail string      `gorm:"column:customer_email;type:varchar(255)"`
	// Payload 用途专属明细的 JSON 快照，供对账与客服查询
	Payload string `gorm:"column:payload;type:text"`
}

func (Order) TableName() string { return "orders" }

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByIntentID(ctx context.Context, intentID string) (*Order, error)
	UpdateStatus(ctx context.Context, intentID string, status OrderStatus) error
}
