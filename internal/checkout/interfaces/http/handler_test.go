package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/wyfcoding/artsfoundation/internal/cart/application"
	cartmemory "github.com/wyfcoding/artsfoundation/internal/cart/infrastructure/memory"
	catalogmemory "github.com/wyfcoding/artsfoundation/internal/catalog/infrastructure/memory"
	"github.com/wyfcoding/artsfoundation/internal/checkout/application"
	checkoutmemory "github.com/wyfcoding/artsfoundation/internal/checkout/infrastructure/memory"
	paymentapp "github.com/wyfcoding/artsfoundation/internal/payment/application"
	paymentdomain "github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/internal/payment/infrastructure/messaging"
	"github.com/wyfcoding/artsfoundation/pkg/metrics"
)

type stubGateway struct {
	created    int
	lastReq    paymentdomain.IntentRequest
	confirmErr error
}

func (g *stubGateway) CreateIntent(ctx context.Context, req paymentdomain.IntentRequest) (*paymentdomain.IntentSnapshot, error) {
	g.created++
	g.lastReq = req
	id := fmt.Sprintf("pi_%d", g.created)
	return &paymentdomain.IntentSnapshot{
		ID:           id,
		ClientSecret: id + "_secret",
		Status:       paymentdomain.IntentStatusRequiresPaymentMethod,
		AmountCents:  req.AmountMinorUnits(),
		Currency:     req.Currency,
	}, nil
}

func (g *stubGateway) ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*paymentdomain.IntentSnapshot, error) {
	if g.confirmErr != nil {
		return nil, g.confirmErr
	}
	return &paymentdomain.IntentSnapshot{ID: intentID, Status: paymentdomain.IntentStatusSucceeded, AmountCents: 5000, Currency: "usd"}, nil
}

func (g *stubGateway) RetrieveIntent(ctx context.Context, intentID string) (*paymentdomain.IntentSnapshot, error) {
	return &paymentdomain.IntentSnapshot{ID: intentID, Status: paymentdomain.IntentStatusSucceeded}, nil
}

func setupRouter(t *testing.T) (*gin.Engine, *stubGateway) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gateway := &stubGateway{}
	intents := paymentapp.NewIntentService(gateway, messaging.NewNoopPublisher(), "usd", decimal.NewFromInt(1))
	store := checkoutmemory.NewSessionStore(time.Minute)
	t.Cleanup(store.Close)

	catalogRepo := catalogmemory.NewCatalogRepository()
	carts := cartapp.NewCartService(cartmemory.NewCartRepository(), catalogRepo)
	service := application.NewCheckoutService(intents, store, catalogRepo, carts, nil, metrics.New("test"), 5*time.Second)

	engine := gin.New()
	NewCheckoutHandler(service, "pk_test_123", "usd").RegisterRoutes(engine.Group("/api"))
	return engine, gateway
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPaymentConfig(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodGet, "/api/payment-config", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pk_test_123", resp["publishableKey"])
	assert.Equal(t, "usd", resp["currency"])
}

func TestCreateDonationIntentEndpoint(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-donation-intent", gin.H{
		"amount":    50,
		"anonymous": true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["clientSecret"])
	assert.NotEmpty(t, resp["sessionId"])
}

func TestCreateDonationIntentRejectsMissingAmount(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-donation-intent", gin.H{"anonymous": true})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventRegistrationIntentFreeEvent(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-event-registration-intent", gin.H{
		"eventId":   1,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "ada@example.com",
		"attendees": 1,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeneralIntentForwardsMetadata(t *testing.T) {
	engine, gateway := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-payment-intent", gin.H{
		"amount":      25,
		"description": "program sponsorship",
		"metadata":    gin.H{"campaign": "spring-gala"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	meta := gateway.lastReq.Metadata.ProviderMetadata()
	assert.Equal(t, "spring-gala", meta["campaign"])
	assert.Equal(t, "program sponsorship", meta["description"])
}

func TestConfirmAndReceiptFlow(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-donation-intent", gin.H{"amount": 50, "anonymous": true})
	require.Equal(t, http.StatusOK, w.Code)
	var handle map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &handle))

	w = doJSON(t, engine, http.MethodPost, "/api/payments/confirm", gin.H{
		"sessionId":       handle["sessionId"],
		"paymentMethodId": "pm_card",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var confirm map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirm))
	assert.Equal(t, "completed", confirm["state"])
	assert.Equal(t, "succeeded", confirm["outcome"])

	w = doJSON(t, engine, http.MethodGet, "/api/confirmation/"+handle["sessionId"], nil)
	require.Equal(t, http.StatusOK, w.Code)
	var receipt map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "donation", receipt["paymentType"])
	assert.Equal(t, "50.00", receipt["amount"])

	// 回执只能取一次
	w = doJSON(t, engine, http.MethodGet, "/api/confirmation/"+handle["sessionId"], nil)
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestConfirmDeclineReportsFailure(t *testing.T) {
	engine, gateway := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/create-donation-intent", gin.H{"amount": 50, "anonymous": true})
	require.Equal(t, http.StatusOK, w.Code)
	var handle map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &handle))

	gateway.confirmErr = &paymentdomain.ProviderError{Code: "card_declined", Message: "Your card was declined."}

	w = doJSON(t, engine, http.MethodPost, "/api/payments/confirm", gin.H{
		"sessionId":       handle["sessionId"],
		"paymentMethodId": "pm_card",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var confirm map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirm))
	assert.Equal(t, "failed", confirm["state"])
	assert.Equal(t, "Your card was declined.", confirm["error"])
}

func TestConfirmUnknownSessionReturns404(t *testing.T) {
	engine, _ := setupRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/payments/confirm", gin.H{
		"sessionId":       "missing",
		"paymentMethodId": "pm_card",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
