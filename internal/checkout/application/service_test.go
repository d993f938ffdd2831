package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/wyfcoding/artsfoundation/internal/cart/application"
	cartmemory "github.com/wyfcoding/artsfoundation/internal/cart/infrastructure/memory"
	catalogmemory "github.com/wyfcoding/artsfoundation/internal/catalog/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/internal/checkout/domain"
	checkoutmemory "github.com/wyfcoding/artsfoundation/internal/checkout/infrastructure/memory"
	paymentapp "github.com/wyfcoding/artsfoundation/internal/payment/application"
	paymentdomain "github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/internal/payment/infrastructure/messaging"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

// fakeGateway 可编排确认结果的支付网关替身
type fakeGateway struct {
	created       int
	confirmCalls  int
	confirmStatus paymentdomain.IntentStatus
	confirmErr    error
}

func (g *fakeGateway) CreateIntent(ctx context.Context, req paymentdomain.IntentRequest) (*paymentdomain.IntentSnapshot, error) {
	g.created++
	id := fmt.Sprintf("pi_%d", g.created)
	return &paymentdomain.IntentSnapshot{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       paymentdomain.IntentStatusRequiresPaymentMethod,
		AmountCents:  req.AmountMinorUnits(),
		Currency:     req.Currency,
	}, nil
}

func (g *fakeGateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*paymentdomain.IntentSnapshot, error) {
	g.confirmCalls++
	if g.confirmErr != nil {
		return nil, g.confirmErr
	}
	return &paymentdomain.IntentSnapshot{ID: intentID, Status: g.confirmStatus, AmountCents: 5000, Currency: "usd"}, nil
}

func (g *fakeGateway) RetrieveIntent(ctx context.Context, intentID string) (*paymentdomain.IntentSnapshot, error) {
	return &paymentdomain.IntentSnapshot{ID: intentID, Status: g.confirmStatus}, nil
}

type testEnv struct {
	gateway  *fakeGateway
	store    *checkoutmemory.SessionStore
	carts    *cartapp.CartService
	checkout *CheckoutService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gateway := &fakeGateway{confirmStatus: paymentdomain.IntentStatusSucceeded}
	intents := paymentapp.NewIntentService(gateway, messaging.NewNoopPublisher(), "usd", decimal.NewFromInt(1))
	store := checkoutmemory.NewSessionStore(time.Minute)
	t.Cleanup(store.Close)

	catalogRepo := catalogmemory.NewCatalogRepository()
	carts := cartapp.NewCartService(cartmemory.NewCartRepository(), catalogRepo)
	checkout := NewCheckoutService(intents, store, catalogRepo, carts, nil, metrics.New("test"), 5*time.Second)
	return &testEnv{gateway: gateway, store: store, carts: carts, checkout: checkout}
}

func TestDonationFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{
		Amount:    decimal.NewFromInt(50),
		Anonymous: true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, handle.ClientSecret)
	assert.NotEmpty(t, handle.SessionID)

	session, err := env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, session.State)
	require.NotNil(t, session.Completed)
	assert.Equal(t, int64(5000), session.Completed.AmountCents)

	view, err := env.checkout.Receipt(ctx, handle.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "donation", view.PaymentType)
	assert.Equal(t, "50.00", view.Amount)
	require.NotNil(t, view.Donation)
	assert.True(t, view.Donation.Anonymous)
}

func TestReceiptIsOneShot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{Amount: decimal.NewFromInt(50), Anonymous: true})
	require.NoError(t, err)
	_, err = env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)

	_, err = env.checkout.Receipt(ctx, handle.SessionID)
	require.NoError(t, err)

	_, err = env.checkout.Receipt(ctx, handle.SessionID)
	assert.ErrorIs(t, err, domain.ErrReceiptConsumed)
}

func TestEventRegistrationComputesTotalServerSide(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Watercolor Workshop：目录价 $25，3 人合计 $75
	handle, err := env.checkout.CreateEventRegistrationIntent(ctx, EventRegistrationRequest{
		EventID:   2,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Attendees: 3,
	})
	require.NoError(t, err)

	session, err := env.store.Get(ctx, handle.SessionID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(75).Equal(session.Amount))
	require.NotNil(t, session.Registration)
	assert.Equal(t, "Watercolor Workshop", session.Registration.EventTitle)
	assert.True(t, decimal.NewFromInt(75).Equal(session.Registration.TotalAmount))
}

func TestEventRegistrationRejectsFreeEvent(t *testing.T) {
	env := newTestEnv(t)

	// Summer Art Fair 免费，应走 RSVP
	_, err := env.checkout.CreateEventRegistrationIntent(context.Background(), EventRegistrationRequest{
		EventID:   1,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Attendees: 1,
	})
	assert.ErrorIs(t, err, domain.ErrFreeEvent)
}

func TestCartCheckoutFlowClearsCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.carts.AddItem(ctx, "cart-1", 2)
	require.NoError(t, err)
	_, err = env.carts.AddItem(ctx, "cart-1", 2)
	require.NoError(t, err)
	_, err = env.carts.AddItem(ctx, "cart-1", 6)
	require.NoError(t, err)

	handle, err := env.checkout.CreateCartIntent(ctx, CartCheckoutRequest{
		CartSessionID: "cart-1",
		ExpectedTotal: decimal.NewFromInt(195),
	})
	require.NoError(t, err)

	session, err := env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, session.State)

	cart, err := env.carts.Get(ctx, "cart-1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCartCheckoutTotalMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.carts.AddItem(ctx, "cart-1", 2)
	require.NoError(t, err)

	_, err = env.checkout.CreateCartIntent(ctx, CartCheckoutRequest{
		CartSessionID: "cart-1",
		ExpectedTotal: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrTotalMismatch)
}

func TestCartCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.checkout.CreateCartIntent(context.Background(), CartCheckoutRequest{CartSessionID: "cart-1"})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestConfirmRecoversInterruptedSuccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{Amount: decimal.NewFromInt(50), Anonymous: true})
	require.NoError(t, err)

	// 确认响应被中断，但错误内嵌的意图自述已成功
	env.gateway.confirmErr = &paymentdomain.ProviderError{
		Code: paymentdomain.CodeIntentUnexpectedState,
		Intent: &paymentdomain.IntentSnapshot{
			ID:          "pi_1",
			Status:      paymentdomain.IntentStatusSucceeded,
			AmountCents: 5000,
			Currency:    "usd",
		},
	}

	session, err := env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, session.State)
	require.NotNil(t, session.Completed)
	assert.True(t, session.Completed.Recovered)
}

func TestConfirmGenuineDeclineIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{Amount: decimal.NewFromInt(50), Anonymous: true})
	require.NoError(t, err)

	env.gateway.confirmErr = &paymentdomain.ProviderError{Code: "card_declined", Message: "Your card was declined."}

	session, err := env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, domain.StateFailed, session.State)
	assert.Equal(t, "Your card was declined.", session.FailureMessage)

	// 换一张卡重试后成功
	env.gateway.confirmErr = nil
	session, err = env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_other_card")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, session.State)
}

func TestConfirmCompletedSessionIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{Amount: decimal.NewFromInt(50), Anonymous: true})
	require.NoError(t, err)
	_, err = env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	require.NoError(t, err)

	confirms := env.gateway.confirmCalls
	_, err = env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	// 成功后的附带动作不会因重复提交再执行
	assert.Equal(t, confirms, env.gateway.confirmCalls)
}

func TestConcurrentConfirmsSubmitOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateDonationIntent(ctx, DonationRequest{Amount: decimal.NewFromInt(50), Anonymous: true})
	require.NoError(t, err)

	// 两个标签页同时确认同一会话，只有一个能进入 submitting
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.checkout.ConfirmPayment(ctx, handle.SessionID, "pm_card")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, env.gateway.confirmCalls)
	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInvalidState):
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}

func TestConfirmUnknownSession(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.checkout.ConfirmPayment(context.Background(), "missing", "pm_card")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestGeneralIntent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	handle, err := env.checkout.CreateGeneralIntent(ctx, GeneralRequest{
		Amount:      decimal.RequireFromString("19.99"),
		Description: "program sponsorship",
	})
	require.NoError(t, err)

	session, err := env.store.Get(ctx, handle.SessionID)
	require.NoError(t, err)
	require.NotNil(t, session.General)
	assert.Equal(t, "program sponsorship", session.General.Description)
}

func TestDonationBelowMinimum(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.checkout.CreateDonationIntent(context.Background(), DonationRequest{
		Amount:    decimal.RequireFromString("0.50"),
		Anonymous: true,
	})
	assert.ErrorIs(t, err, paymentdomain.ErrAmountTooSmall)
}
