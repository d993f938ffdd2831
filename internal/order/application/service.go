package application

import (
	"context"
	"encoding/json"

	"github.com/wyfcoding/artsfoundation/internal/order/domain"
	paymentdomain "github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// OrderService 订单应用服务。订单记录为结账流程的旁路产物，
// 写入失败不阻断支付，只记日志。
type OrderService struct {
	repo domain.Repository
}

func NewOrderService(repo domain.Repository) *OrderService {
	return &OrderService{repo: repo}
}

// RecordPending 意图创建后登记待支付订单
func (s *OrderService) RecordPending(ctx context.Context, sessionID string, snap *paymentdomain.IntentSnapshot, purpose paymentdomain.Purpose, customerName, customerEmail string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn(ctx, "failed to marshal order payload", "intent_id", snap.ID, "error", err)
		data = []byte("{}")
	}
	order := &domain.Order{
		IntentID:      snap.ID,
		SessionID:     sessionID,
		Purpose:       string(purpose),
		AmountCents:   snap.AmountCents,
		Currency:      snap.Currency,
		Status:        domain.OrderStatusPending,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		Payload:       string(data),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		logger.Warn(ctx, "failed to record pending order", "intent_id", snap.ID, "error", err)
	}
}

// MarkOutcome 确认归类后回写订单状态
func (s *OrderService) MarkOutcome(ctx context.Context, intentID string, outcome paymentdomain.Outcome) {
	if intentID == "" {
		return
	}
	var status domain.OrderStatus
	switch outcome {
	case paymentdomain.OutcomeSucceeded:
		status = domain.OrderStatusSucceeded
	case paymentdomain.OutcomeProcessing:
		status = domain.OrderStatusProcessing
	default:
		status = domain.OrderStatusFailed
	}
	if err := s.repo.UpdateStatus(ctx, intentID, status); err != nil {
		logger.Warn(ctx, "failed to update order status", "intent_id", intentID, "status", status, "error", err)
	}
}

// GetByIntentID 按意图 id 查询订单
func (s *OrderService) GetByIntentID(ctx context.Context, intentID string) (*domain.Order, error) {
	return s.repo.GetByIntentID(ctx, intentID)
}
