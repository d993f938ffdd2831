package domain

import (
	"context"
	"fmt"
)

// Gateway 支付提供方抽象；实现见 infrastructure/stripe
type Gateway interface {
	// CreateIntent 创建一个远端支付意图。每次调用创建一个新的远端资源，
	// 创建失败不自动重试（跨重试不保证幂等）。
	CreateIntent(ctx context.Context, req IntentRequest) (*IntentSnapshot, error)
	// ConfirmIntent 用收集到的支付方式确认意图
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*IntentSnapshot, error)
	// RetrieveIntent 查询意图当前状态
	RetrieveIntent(ctx context.Context, intentID string) (*IntentSnapshot, error)
}

// CodeIntentUnexpectedState 提供方错误码：请求/响应被中断，但底层意图可能已成功。
// 只有这一类错误允许按意图自述状态改判，见 ClassifyConfirmation。
const CodeIntentUnexpectedState = "payment_intent_unexpected_state"

// ProviderError 支付提供方返回的错误，附带错误发生时的意图快照
type ProviderError struct {
	Code    string
	Message string
	Intent  *IntentSnapshot
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("provider error %s", e.Code)
}
