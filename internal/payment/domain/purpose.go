package domain

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Purpose 支付用途标签，决定确认页视图与元数据结构
type Purpose string

const (
	PurposeDonation          Purpose = "donation"
	PurposeEventRegistration Purpose = "event-registration"
	PurposeCartCheckout      Purpose = "cart-checkout"
	PurposeGeneral           Purpose = "general"
)

// Valid 判断用途是否合法
func (p Purpose) Valid() bool {
	switch p {
	case PurposeDonation, PurposeEventRegistration, PurposeCartCheckout, PurposeGeneral:
		return true
	}
	return false
}

// Metadata 按用途区分的意图元数据；每种用途静态约束自己的必填字段
type Metadata interface {
	Purpose() Purpose
	Validate() error
	// ProviderMetadata 展开为支付提供方意图上的不透明元数据，供外部系统对账
	ProviderMetadata() map[string]string
}

// DonationMetadata 捐赠元数据；匿名捐赠时姓名与邮箱均可为空
type DonationMetadata struct {
	DonorName  string
	DonorEmail string
	Message    string
	Anonymous  bool
}

func (DonationMetadata) Purpose() Purpose { return PurposeDonation }

func (m DonationMetadata) Validate() error {
	return nil
}

func (m DonationMetadata) ProviderMetadata() map[string]string {
	meta := map[string]string{"purpose": string(PurposeDonation)}
	if m.DonorName != "" {
		meta["donor_name"] = m.DonorName
	}
	if m.DonorEmail != "" {
		meta["donor_email"] = m.DonorEmail
	}
	if m.Message != "" {
		meta["message"] = m.Message
	}
	return meta
}

// EventRegistrationMetadata 活动报名元数据
type EventRegistrationMetadata struct {
	EventID          int64
	EventTitle       string
	Attendees        int
	PricePerAttendee decimal.Decimal
}

func (EventRegistrationMetadata) Purpose() Purpose { return PurposeEventRegistration }

func (m EventRegistrationMetadata) Validate() error {
	if m.EventID <= 0 {
		return fmt.Errorf("%w: event id is required", ErrInvalidMetadata)
	}
	if m.Attendees < 1 {
		return fmt.Errorf("%w: attendees must be at least 1", ErrInvalidMetadata)
	}
	if m.PricePerAttendee.Sign() <= 0 {
		return fmt.Errorf("%w: price per attendee must be positive", ErrInvalidMetadata)
	}
	return nil
}

// TotalAmount 报名总额 = 单价 × 人数
func (m EventRegistrationMetadata) TotalAmount() decimal.Decimal {
	return m.PricePerAttendee.Mul(decimal.NewFromInt(int64(m.Attendees)))
}

func (m EventRegistrationMetadata) ProviderMetadata() map[string]string {
	return map[string]string{
		"purpose":   string(PurposeEventRegistration),
		"event_id":  strconv.FormatInt(m.EventID, 10),
		"attendees": strconv.Itoa(m.Attendees),
	}
}

// CartLine 购物车行条目快照
type CartLine struct {
	ProductID int64
	Title     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// CartCheckoutMetadata 商店结账元数据
type CartCheckoutMetadata struct {
	Lines []CartLine
}

func (CartCheckoutMetadata) Purpose() Purpose { return PurposeCartCheckout }

func (m CartCheckoutMetadata) Validate() error {
	if len(m.Lines) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrInvalidMetadata)
	}
	for _, l := range m.Lines {
		if l.Quantity < 1 {
			return fmt.Errorf("%w: line quantity must be at least 1", ErrInvalidMetadata)
		}
	}
	return nil
}

// Total 行合计之和
func (m CartCheckoutMetadata) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (m CartCheckoutMetadata) ProviderMetadata() map[string]string {
	meta := map[string]string{"purpose": string(PurposeCartCheckout)}
	for _, l := range m.Lines {
		meta["item_"+strconv.FormatInt(l.ProductID, 10)] = strconv.Itoa(l.Quantity)
	}
	return meta
}

// GeneralMetadata 通用支付元数据
type GeneralMetadata struct {
	Description string
	Extra       map[string]string
}

func (GeneralMetadata) Purpose() Purpose { return PurposeGeneral }

func (m GeneralMetadata) Validate() error { return nil }

func (m GeneralMetadata) ProviderMetadata() map[string]string {
	meta := map[string]string{"purpose": string(PurposeGeneral)}
	if m.Description != "" {
		meta["description"] = m.Description
	}
	for k, v := range m.Extra {
		meta[k] = v
	}
	return meta
}
