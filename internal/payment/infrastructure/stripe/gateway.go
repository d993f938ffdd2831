// Package stripe 基于 stripe-go 实现支付网关
package stripe

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"

	"github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// Gateway Stripe 支付网关
type Gateway struct{}

// NewGateway 创建 Stripe 网关；secretKey 为服务端密钥
func NewGateway(secretKey string) *Gateway {
	stripe.Key = secretKey
	return &Gateway{}
}

// CreateIntent 创建远端支付意图并附加用途元数据
func (g *Gateway) CreateIntent(ctx context.Context, req domain.IntentRequest) (*domain.IntentSnapshot, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.AmountMinorUnits()),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata.ProviderMetadata() {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		logger.Error(ctx, "Stripe payment intent creation failed",
			"purpose", string(req.Metadata.Purpose()),
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", domain.ErrIntentCreateFailed, translateError(err))
	}

	logger.Info(ctx, "Stripe payment intent created",
		"intent_id", pi.ID,
		"purpose", string(req.Metadata.Purpose()),
		"amount_cents", pi.Amount,
	)
	return snapshot(pi), nil
}

// ConfirmIntent 确认支付意图
func (g *Gateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*domain.IntentSnapshot, error) {
	params := &stripe.PaymentIntentConfirmParams{
		Params:        stripe.Params{Context: ctx},
		PaymentMethod: stripe.String(paymentMethodID),
	}
	pi, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, translateError(err)
	}
	return snapshot(pi), nil
}

// RetrieveIntent 查询支付意图当前状态
func (g *Gateway) RetrieveIntent(ctx context.Context, intentID string) (*domain.IntentSnapshot, error) {
	pi, err := paymentintent.Get(intentID, &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, translateError(err)
	}
	return snapshot(pi), nil
}

func snapshot(pi *stripe.PaymentIntent) *domain.IntentSnapshot {
	return &domain.IntentSnapshot{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       domain.IntentStatus(pi.Status),
		AmountCents:  pi.Amount,
		Currency:     string(pi.Currency),
	}
}

// translateError 把 stripe.Error 映射为领域 ProviderError，保留错误内嵌的意图快照
func translateError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}
	provErr := &domain.ProviderError{
		Code:    string(stripeErr.Code),
		Message: stripeErr.Msg,
	}
	if stripeErr.PaymentIntent != nil {
		provErr.Intent = snapshot(stripeErr.PaymentIntent)
	}
	return provErr
}
