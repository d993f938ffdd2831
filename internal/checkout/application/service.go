package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartapp "github.com/wyfcoding/artsfoundation/internal/cart/application"
	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/internal/checkout/domain"
	orderapp "github.com/wyfcoding/artsfoundation/internal/order/application"
	paymentapp "github.com/wyfcoding/artsfoundation/internal/payment/application"
	paymentdomain "github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

// CheckoutService 结账编排服务：建立意图、挂接会话、确认并分发成功后动作
type CheckoutService struct {
	intents        *paymentapp.IntentService
	store          domain.SessionStore
	catalog        catalogdomain.Repository
	carts          *cartapp.CartService
	orders         *orderapp.OrderService
	metrics        *metrics.Metrics
	confirmTimeout time.Duration
	confirms       *sessionLocks
}

func NewCheckoutService(
	intents *paymentapp.IntentService,
	store domain.SessionStore,
	catalog catalogdomain.Repository,
	carts *cartapp.CartService,
	orders *orderapp.OrderService,
	m *metrics.Metrics,
	confirmTimeout time.Duration,
) *CheckoutService {
	return &CheckoutService{
		intents:        intents,
		store:          store,
		catalog:        catalog,
		carts:          carts,
		orders:         orders,
		metrics:        m,
		confirmTimeout: confirmTimeout,
		confirms:       newSessionLocks(),
	}
}

// sessionLocks 按会话 ID 串行化确认请求；同一会话的并发确认只有一个能进入 submitting
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &sessionLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()
	entry.Lock()
}

func (l *sessionLocks) unlock(id string) {
	l.mu.Lock()
	entry := l.locks[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, id)
	}
	l.mu.Unlock()
	entry.Unlock()
}

// IntentHandle 建立意图后交还给浏览器的两个句柄
type IntentHandle struct {
	ClientSecret string `json:"clientSecret"`
	SessionID    string `json:"sessionId"`
}

// DonationRequest 捐赠结账请求
type DonationRequest struct {
	Amount     decimal.Decimal
	DonorName  string
	DonorEmail string
	Message    string
	Anonymous  bool
}

// CreateDonationIntent 建立捐赠支付意图；匿名捐赠无需任何身份字段
func (s *CheckoutService) CreateDonationIntent(ctx context.Context, req DonationRequest) (*IntentHandle, error) {
	meta := paymentdomain.DonationMetadata{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
	}
	session := s.newSession(paymentdomain.PurposeDonation, req.Amount)
	session.Donation = &domain.DonationDetails{
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
	}
	return s.establishIntent(ctx, session, req.Amount, meta, req.DonorName, req.DonorEmail)
}

// EventRegistrationRequest 活动报名结账请求；金额不由客户端传入
type EventRegistrationRequest struct {
	EventID   int64
	FirstName string
	LastName  string
	Email     string
	Attendees int
}

// CreateEventRegistrationIntent 建立活动报名支付意图。
// 总额 = 目录单价 × 人数，由服务端计算；免费活动拒绝建立意图。
func (s *CheckoutService) CreateEventRegistrationIntent(ctx context.Context, req EventRegistrationRequest) (*IntentHandle, error) {
	event, err := s.catalog.EventByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if event.Free() {
		return nil, domain.ErrFreeEvent
	}
	meta := paymentdomain.EventRegistrationMetadata{
		EventID:          event.ID,
		EventTitle:       event.Title,
		Attendees:        req.Attendees,
		PricePerAttendee: event.Price,
	}
	total := meta.TotalAmount()
	session := s.newSession(paymentdomain.PurposeEventRegistration, total)
	session.Registration = &domain.RegistrationDetails{
		EventID:     event.ID,
		EventTitle:  event.Title,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Attendees:   req.Attendees,
		TotalAmount: total,
	}
	return s.establishIntent(ctx, session, total, meta, req.FirstName+" "+req.LastName, req.Email)
}

// CartCheckoutRequest 商店结账请求。ExpectedTotal 为客户端展示的合计，
// 仅用于交叉校验；实际金额以服务端购物车重算为准。
type CartCheckoutRequest struct {
	CartSessionID string
	ExpectedTotal decimal.Decimal
	Shipping      *domain.ShippingDetails
}

// CreateCartIntent 建立商店结账支付意图
func (s *CheckoutService) CreateCartIntent(ctx context.Context, req CartCheckoutRequest) (*IntentHandle, error) {
	cart, err := s.carts.Get(ctx, req.CartSessionID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domain.ErrEmptyCart
	}
	total := cart.Total()
	if !req.ExpectedTotal.IsZero() && !req.ExpectedTotal.Equal(total) {
		return nil, domain.ErrTotalMismatch
	}

	lines := make([]paymentdomain.CartLine, 0, len(cart.Items))
	snapshot := make([]domain.CartLineSnapshot, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, paymentdomain.CartLine{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
		snapshot = append(snapshot, domain.CartLineSnapshot{
			ProductID: item.ProductID,
			Title:     item.Title,
			Artist:    item.Artist,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	session := s.newSession(paymentdomain.PurposeCartCheckout, total)
	session.Cart = &domain.CartSnapshot{
		CartSessionID: req.CartSessionID,
		Lines:         snapshot,
		Shipping:      req.Shipping,
	}
	var name, email string
	if req.Shipping != nil {
		name, email = req.Shipping.Name, req.Shipping.Email
	}
	return s.establishIntent(ctx, session, total, paymentdomain.CartCheckoutMetadata{Lines: lines}, name, email)
}

// GeneralRequest 通用支付请求
type GeneralRequest struct {
	Amount      decimal.Decimal
	Description string
	Extra       map[string]string
}

// CreateGeneralIntent 建立通用支付意图
func (s *CheckoutService) CreateGeneralIntent(ctx context.Context, req GeneralRequest) (*IntentHandle, error) {
	session := s.newSession(paymentdomain.PurposeGeneral, req.Amount)
	session.General = &domain.GeneralDetails{Description: req.Description}
	meta := paymentdomain.GeneralMetadata{Description: req.Description, Extra: req.Extra}
	return s.establishIntent(ctx, session, req.Amount, meta, "", "")
}

func (s *CheckoutService) newSession(purpose paymentdomain.Purpose, amount decimal.Decimal) *domain.CheckoutSession {
	now := time.Now()
	return &domain.CheckoutSession{
		ID:        uuid.NewString(),
		Purpose:   purpose,
		State:     domain.StatePending,
		Amount:    amount,
		Currency:  s.intents.Currency(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// establishIntent 建立意图并持久化会话，失败时不留下半成品会话
func (s *CheckoutService) establishIntent(ctx context.Context, session *domain.CheckoutSession, amount decimal.Decimal, meta paymentdomain.Metadata, customerName, customerEmail string) (*IntentHandle, error) {
	if err := session.Validate(); err != nil {
		return nil, err
	}
	snap, err := s.intents.CreateIntent(ctx, amount, meta)
	if err != nil {
		return nil, err
	}
	session.AttachIntent(snap)
	if err := s.store.Save(ctx, session); err != nil {
		logger.Error(ctx, "failed to save checkout session", "session_id", session.ID, "error", err)
		return nil, err
	}

	s.metrics.IntentsCreatedTotal.WithLabelValues(string(session.Purpose)).Inc()
	if s.orders != nil {
		s.orders.RecordPending(ctx, session.ID, snap, session.Purpose, customerName, customerEmail, session)
	}
	return &IntentHandle{ClientSecret: snap.ClientSecret, SessionID: session.ID}, nil
}

// ConfirmPayment 提交支付确认并按归类结果推进会话状态。
// 成功后的附带动作（清空购物车、回写订单、发布事件）只会执行一次：
// 已完成的会话无法再次进入提交态。
func (s *CheckoutService) ConfirmPayment(ctx context.Context, sessionID, paymentMethodID string) (*domain.CheckoutSession, error) {
	s.confirms.lock(sessionID)
	defer s.confirms.unlock(sessionID)

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.BeginSubmission(); err != nil {
		return session, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	result := s.intents.Confirm(ctx, session.IntentID, paymentMethodID, s.confirmTimeout)
	s.metrics.ConfirmationsTotal.WithLabelValues(string(result.Outcome)).Inc()

	switch result.Outcome {
	case paymentdomain.OutcomeSucceeded, paymentdomain.OutcomeProcessing:
		session.Complete(result)
		if result.Outcome == paymentdomain.OutcomeSucceeded {
			s.metrics.AmountCollectedCents.Add(float64(session.Completed.AmountCents))
		}
		if session.Purpose == paymentdomain.PurposeCartCheckout && session.Cart != nil {
			if err := s.carts.Clear(ctx, session.Cart.CartSessionID); err != nil {
				logger.Warn(ctx, "failed to clear cart after payment", "cart_session_id", session.Cart.CartSessionID, "error", err)
			}
		}
	default:
		session.Fail(result.FailureMessage)
	}

	if s.orders != nil {
		s.orders.MarkOutcome(ctx, session.IntentID, result.Outcome)
	}
	s.intents.PublishOutcome(ctx, session.Purpose, result)

	if err := s.store.Save(ctx, session); err != nil {
		logger.Error(ctx, "failed to save session after confirmation", "session_id", session.ID, "error", err)
		return nil, err
	}
	return session, nil
}

// ReceiptView 确认页渲染所需的全部数据；按用途恰好填充一个明细段
type ReceiptView struct {
	SessionID   string `json:"sessionId"`
	PaymentType string `json:"paymentType"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
	IntentID    string `json:"intentId"`
	Processing  bool   `json:"processing,omitempty"`

	Donation     *domain.DonationDetails     `json:"donation,omitempty"`
	Registration *domain.RegistrationDetails `json:"registration,omitempty"`
	Cart         *domain.CartSnapshot        `json:"cart,omitempty"`
	General      *domain.GeneralDetails      `json:"general,omitempty"`
}

// Receipt 渲染一次性回执。读取即消费：第二次请求同一会话返回已消费错误，
// 刷新确认页不会重复展示（或重复清理）任何状态。
func (s *CheckoutService) Receipt(ctx context.Context, sessionID string) (*ReceiptView, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := session.ConsumeReceipt(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	view := &ReceiptView{
		SessionID:    session.ID,
		PaymentType:  string(session.Completed.PaymentType),
		Amount:       paymentdomain.FromMinorUnits(session.Completed.AmountCents).StringFixed(2),
		AmountCents:  session.Completed.AmountCents,
		Currency:     session.Currency,
		IntentID:     session.Completed.IntentID,
		Processing:   session.Completed.Processing,
		Donation:     session.Donation,
		Registration: session.Registration,
		Cart:         session.Cart,
		General:      session.General,
	}
	return view, nil
}
