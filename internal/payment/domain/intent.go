package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// IntentStatus 支付提供方报告的意图状态
type IntentStatus string

const (
	IntentStatusSucceeded             IntentStatus = "succeeded"
	IntentStatusProcessing            IntentStatus = "processing"
	IntentStatusRequiresAction        IntentStatus = "requires_action"
	IntentStatusRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentStatusCanceled              IntentStatus = "canceled"
)

// IntentRequest 创建支付意图的请求；每次结账尝试构造并发送一次
type IntentRequest struct {
	// 主单位金额
	Amount   decimal.Decimal
	Currency string
	Metadata Metadata
}

// Validate 校验金额下限与元数据
func (r IntentRequest) Validate(minimum decimal.Decimal) error {
	if r.Amount.LessThan(minimum) {
		return fmt.Errorf("%w: got %s, minimum %s", ErrAmountTooSmall, r.Amount.String(), minimum.String())
	}
	if r.Metadata == nil {
		return fmt.Errorf("%w: metadata is required", ErrInvalidMetadata)
	}
	return r.Metadata.Validate()
}

// AmountMinorUnits 请求金额换算为最小货币单位
func (r IntentRequest) AmountMinorUnits() int64 {
	return ToMinorUnits(r.Amount)
}

// IntentSnapshot 支付提供方意图的本地快照
type IntentSnapshot struct {
	ID string
	// 一次性令牌，授权浏览器确认该意图；消费一次后不再派生其他状态
	ClientSecret string
	Status       IntentStatus
	// 最小货币单位金额
	AmountCents int64
	Currency    string
}

// ToMinorUnits 主单位金额换算为最小货币单位：乘 100 后四舍五入到整数。
// 这是整条流程中唯一有数值意义的转换，偏差一分钱都会产生错误的意图。
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// FromMinorUnits 最小货币单位换算回主单位
func FromMinorUnits(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}
