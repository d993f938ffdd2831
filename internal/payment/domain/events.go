package domain

import (
	"context"
	"time"
)

// EventPublisher 支付生命周期事件发布者
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// IntentCreatedEvent 支付意图创建事件
type IntentCreatedEvent struct {
	IntentID    string    `json:"intent_id"`
	Purpose     string    `json:"purpose"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentSucceededEvent 支付成功事件
type PaymentSucceededEvent struct {
	IntentID    string    `json:"intent_id"`
	Purpose     string    `json:"purpose"`
	AmountCents int64     `json:"amount_cents"`
	Recovered   bool      `json:"recovered"`
	Timestamp   time.Time `json:"timestamp"`
}

// PaymentFailedEvent 支付失败事件
type PaymentFailedEvent struct {
	IntentID  string    `json:"intent_id"`
	Purpose   string    `json:"purpose"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
