// Package messaging 支付生命周期事件发布实现
package messaging

import (
	"context"

	"github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/mq"
)

// kafkaPublisher 基于 Kafka 的事件发布者
type kafkaPublisher struct {
	producer *mq.Producer
}

// NewKafkaPublisher 创建 Kafka 事件发布者
func NewKafkaPublisher(producer *mq.Producer) domain.EventPublisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}

// noopPublisher 未配置 broker 时的空实现
type noopPublisher struct{}

// NewNoopPublisher 创建空事件发布者
func NewNoopPublisher() domain.EventPublisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, string, any) error { return nil }
