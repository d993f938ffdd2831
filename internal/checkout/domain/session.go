package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	payment "github.com/wyfcoding/artsfoundation/internal/payment/domain"
)

// State 结账会话生命周期状态
type State string

const (
	// StatePending 会话已创建，支付意图尚未建立
	StatePending State = "pending"
	// StateAwaitingPayment 意图已建立，等待浏览器提交支付方式
	StateAwaitingPayment State = "awaiting_payment"
	// StateSubmitting 确认请求已发出，结果未归类
	StateSubmitting State = "submitting"
	// StateCompleted 支付已成功（含 processing 的临时成功）
	StateCompleted State = "completed"
	// StateFailed 确认失败，允许重新提交
	StateFailed State = "failed"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrInvalidState    = errors.New("invalid session state transition")
	// ErrNoClientSecret 会话上没有可确认的意图时提交即为无操作
	ErrNoClientSecret  = errors.New("session has no payment intent to confirm")
	ErrReceiptConsumed = errors.New("receipt already viewed")
)

// DonationDetails 捐赠会话载荷
type DonationDetails struct {
	DonorName  string `json:"donorName,omitempty"`
	DonorEmail string `json:"donorEmail,omitempty"`
	Message    string `json:"message,omitempty"`
	Anonymous  bool   `json:"anonymous"`
}

// RegistrationDetails 活动报名会话载荷；TotalAmount 由服务端按目录价计算
type RegistrationDetails struct {
	EventID     int64           `json:"eventId"`
	EventTitle  string          `json:"eventTitle"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	Email       string          `json:"email"`
	Attendees   int             `json:"attendees"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// CartLineSnapshot 结账时刻的购物车行快照
type CartLineSnapshot struct {
	ProductID int64           `json:"productId"`
	Title     string          `json:"title"`
	Artist    string          `json:"artist,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// CartSnapshot 商店结账会话载荷
type CartSnapshot struct {
	CartSessionID string             `json:"cartSessionId"`
	Lines         []CartLineSnapshot `json:"lines"`
	Shipping      *ShippingDetails   `json:"shipping,omitempty"`
}

// ShippingDetails 收货信息
type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// GeneralDetails 通用支付会话载荷
type GeneralDetails struct {
	Description string `json:"description,omitempty"`
}

// CompletedPayment 支付完成的最小事实三元组加归类补充
type CompletedPayment struct {
	PaymentType payment.Purpose `json:"paymentType"`
	AmountCents int64           `json:"amountCents"`
	IntentID    string          `json:"intentId"`
	Processing  bool            `json:"processing,omitempty"`
	Recovered   bool            `json:"recovered,omitempty"`
	CompletedAt time.Time       `json:"completedAt"`
}

// CheckoutSession 一次结账尝试的服务端状态。
// 每种用途恰好填充一个载荷字段，与 Purpose 一致。
type CheckoutSession struct {
	ID       string          `json:"id"`
	Purpose  payment.Purpose `json:"purpose"`
	State    State           `json:"state"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`

	IntentID     string `json:"intentId,omitempty"`
	ClientSecret string `json:"clientSecret,omitempty"`

	Donation     *DonationDetails     `json:"donation,omitempty"`
	Registration *RegistrationDetails `json:"registration,omitempty"`
	Cart         *CartSnapshot        `json:"cart,omitempty"`
	General      *GeneralDetails      `json:"general,omitempty"`

	Completed      *CompletedPayment `json:"completed,omitempty"`
	FailureMessage string            `json:"failureMessage,omitempty"`
	ReceiptViewed  bool              `json:"receiptViewed"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate 校验载荷与用途互斥对应
func (s *CheckoutSession) Validate() error {
	count := 0
	if s.Donation != nil {
		count++
		if s.Purpose != payment.PurposeDonation {
			return fmt.Errorf("donation payload on %s session", s.Purpose)
		}
	}
	if s.Registration != nil {
		count++
		if s.Purpose != payment.PurposeEventRegistration {
			return fmt.Errorf("registration payload on %s session", s.Purpose)
		}
	}
	if s.Cart != nil {
		count++
		if s.Purpose != payment.PurposeCartCheckout {
			return fmt.Errorf("cart payload on %s session", s.Purpose)
		}
	}
	if s.General != nil {
		count++
		if s.Purpose != payment.PurposeGeneral {
			return fmt.Errorf("general payload on %s session", s.Purpose)
		}
	}
	if count != 1 {
		return fmt.Errorf("session must carry exactly one payload, got %d", count)
	}
	return nil
}

// AttachIntent 挂接已创建的支付意图，进入等待支付态
func (s *CheckoutSession) AttachIntent(snap *payment.IntentSnapshot) {
	s.IntentID = snap.ID
	s.ClientSecret = snap.ClientSecret
	s.State = StateAwaitingPayment
	s.UpdatedAt = time.Now()
}

// BeginSubmission 进入提交态；失败后的会话允许重试提交
func (s *CheckoutSession) BeginSubmission() error {
	if s.ClientSecret == "" {
		return ErrNoClientSecret
	}
	if s.State != StateAwaitingPayment && s.State != StateFailed {
		return fmt.Errorf("%w: cannot submit from %s", ErrInvalidState, s.State)
	}
	s.State = StateSubmitting
	s.FailureMessage = ""
	s.UpdatedAt = time.Now()
	return nil
}

// Complete 记录完成三元组并进入完成态
func (s *CheckoutSession) Complete(result payment.ConfirmationResult) {
	amountCents := payment.ToMinorUnits(s.Amount)
	intentID := s.IntentID
	if result.Intent != nil {
		amountCents = result.Intent.AmountCents
		intentID = result.Intent.ID
	}
	s.Completed = &CompletedPayment{
		PaymentType: s.Purpose,
		AmountCents: amountCents,
		IntentID:    intentID,
		Processing:  result.Outcome == payment.OutcomeProcessing,
		Recovered:   result.Recovered,
		CompletedAt: time.Now(),
	}
	s.State = StateCompleted
	s.UpdatedAt = time.Now()
}

// Fail 记录失败原因，回到可重试的失败态
func (s *CheckoutSession) Fail(message string) {
	s.State = StateFailed
	s.FailureMessage = message
	s.UpdatedAt = time.Now()
}

// ConsumeReceipt 标记回执已读；回执只渲染一次
func (s *CheckoutSession) ConsumeReceipt() error {
	if s.State != StateCompleted {
		return fmt.Errorf("%w: receipt requires a completed session, got %s", ErrInvalidState, s.State)
	}
	if s.ReceiptViewed {
		return ErrReceiptConsumed
	}
	s.ReceiptViewed = true
	s.UpdatedAt = time.Now()
	return nil
}
