package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// Kafka topic 约定
const (
	TopicIntentCreated    = "payment.intent.created"
	TopicPaymentSucceeded = "payment.succeeded"
	TopicPaymentFailed    = "payment.failed"
)

// IntentService 支付意图服务：校验、创建远端意图并发布生命周期事件
type IntentService struct {
	gateway   domain.Gateway
	publisher domain.EventPublisher
	currency  string
	minimum   decimal.Decimal
}

// NewIntentService 创建支付意图服务
func NewIntentService(gateway domain.Gateway, publisher domain.EventPublisher, currency string, minimum decimal.Decimal) *IntentService {
	return &IntentService{
		gateway:   gateway,
		publisher: publisher,
		currency:  currency,
		minimum:   minimum,
	}
}

// Currency 结算货币
func (s *IntentService) Currency() string { return s.currency }

// MinimumAmount 最低支付金额（主单位）
func (s *IntentService) MinimumAmount() decimal.Decimal { return s.minimum }

// CreateIntent 校验请求并创建一个远端支付意图。
// 每次调用对应一个远端资源；提供方失败不重试，由用户重新提交表单。
func (s *IntentService) CreateIntent(ctx context.Context, amount decimal.Decimal, meta domain.Metadata) (*domain.IntentSnapshot, error) {
	req := domain.IntentRequest{
		Amount:   amount,
		Currency: s.currency,
		Metadata: meta,
	}
	if err := req.Validate(s.minimum); err != nil {
		return nil, err
	}

	snap, err := s.gateway.CreateIntent(ctx, req)
	if err != nil {
		return nil, err
	}

	event := domain.IntentCreatedEvent{
		IntentID:    snap.ID,
		Purpose:     string(meta.Purpose()),
		AmountCents: snap.AmountCents,
		Currency:    snap.Currency,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, TopicIntentCreated, snap.ID, event); err != nil {
		// 事件发布失败不阻断支付流程
		logger.Warn(ctx, "failed to publish intent created event", "intent_id", snap.ID, "error", err)
	}

	return snap, nil
}

// PublishOutcome 发布确认结局事件
func (s *IntentService) PublishOutcome(ctx context.Context, purpose domain.Purpose, result domain.ConfirmationResult) {
	now := time.Now()
	switch result.Outcome {
	case domain.OutcomeSucceeded:
		intentID, amount := "", int64(0)
		if result.Intent != nil {
			intentID, amount = result.Intent.ID, result.Intent.AmountCents
		}
		event := domain.PaymentSucceededEvent{
			IntentID:    intentID,
			Purpose:     string(purpose),
			AmountCents: amount,
			Recovered:   result.Recovered,
			Timestamp:   now,
		}
		if err := s.publisher.Publish(ctx, TopicPaymentSucceeded, intentID, event); err != nil {
			logger.Warn(ctx, "failed to publish payment succeeded event", "intent_id", intentID, "error", err)
		}
	case domain.OutcomeFailed:
		intentID := ""
		if result.Intent != nil {
			intentID = result.Intent.ID
		}
		event := domain.PaymentFailedEvent{
			IntentID:  intentID,
			Purpose:   string(purpose),
			Reason:    result.FailureMessage,
			Timestamp: now,
		}
		if err := s.publisher.Publish(ctx, TopicPaymentFailed, intentID, event); err != nil {
			logger.Warn(ctx, "failed to publish payment failed event", "intent_id", intentID, "error", err)
		}
	}
}

// Confirm 用指定支付方式确认意图并对结果归类；deadline 到期按失败处理
func (s *IntentService) Confirm(ctx context.Context, intentID, paymentMethodID string, timeout time.Duration) domain.ConfirmationResult {
	confirmCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, err := s.gateway.ConfirmIntent(confirmCtx, intentID, paymentMethodID)
	if err != nil && confirmCtx.Err() != nil {
		err = confirmCtx.Err()
	}
	return domain.ClassifyConfirmation(snap, err)
}
