package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/internal/checkout/application"
	"github.com/wyfcoding/artsfoundation/internal/checkout/domain"
	paymentdomain "github.com/wyfcoding/artsfoundation/internal/payment/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// CheckoutHandler 结账流程 HTTP 接口
type CheckoutHandler struct {
	service        *application.CheckoutService
	publishableKey string
	currency       string
}

func NewCheckoutHandler(service *application.CheckoutService, publishableKey, currency string) *CheckoutHandler {
	return &CheckoutHandler{service: service, publishableKey: publishableKey, currency: currency}
}

func (h *CheckoutHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/create-donation-intent", h.CreateDonationIntent)
	api.POST("/create-event-registration-intent", h.CreateEventRegistrationIntent)
	api.POST("/create-cart-payment-intent", h.CreateCartIntent)
	api.POST("/create-payment-intent", h.CreateGeneralIntent)
	api.POST("/payments/confirm", h.ConfirmPayment)
	api.GET("/confirmation/:sessionId", h.Confirmation)
	api.GET("/payment-config", h.PaymentConfig)
}

// PaymentConfig 浏览器初始化支付组件所需的公开配置
func (h *CheckoutHandler) PaymentConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publishableKey": h.publishableKey,
		"currency":       h.currency,
	})
}

type donationIntentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	DonorName  string          `json:"donorName"`
	DonorEmail string          `json:"donorEmail"`
	Message    string          `json:"message"`
	Anonymous  bool            `json:"anonymous"`
}

func (h *CheckoutHandler) CreateDonationIntent(c *gin.Context) {
	var req donationIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handle, err := h.service.CreateDonationIntent(c.Request.Context(), application.DonationRequest{
		Amount:     req.Amount,
		DonorName:  req.DonorName,
		DonorEmail: req.DonorEmail,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
	})
	if err != nil {
		h.renderIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, handle)
}

type eventRegistrationIntentRequest struct {
	EventID   int64  `json:"eventId" binding:"required"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Attendees int    `json:"attendees" binding:"required,min=1"`
}

func (h *CheckoutHandler) CreateEventRegistrationIntent(c *gin.Context) {
	var req eventRegistrationIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handle, err := h.service.CreateEventRegistrationIntent(c.Request.Context(), application.EventRegistrationRequest{
		EventID:   req.EventID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Attendees: req.Attendees,
	})
	if err != nil {
		h.renderIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, handle)
}

type cartIntentRequest struct {
	CartSessionID string                  `json:"cartSessionId" binding:"required"`
	Total         decimal.Decimal         `json:"total" binding:"required"`
	Shipping      *domain.ShippingDetails `json:"shipping"`
}

func (h *CheckoutHandler) CreateCartIntent(c *gin.Context) {
	var req cartIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handle, err := h.service.CreateCartIntent(c.Request.Context(), application.CartCheckoutRequest{
		CartSessionID: req.CartSessionID,
		ExpectedTotal: req.Total,
		Shipping:      req.Shipping,
	})
	if err != nil {
		h.renderIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, handle)
}

type generalIntentRequest struct {
	Amount      decimal.Decimal   `json:"amount" binding:"required"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

func (h *CheckoutHandler) CreateGeneralIntent(c *gin.Context) {
	var req generalIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	handle, err := h.service.CreateGeneralIntent(c.Request.Context(), application.GeneralRequest{
		Amount:      req.Amount,
		Description: req.Description,
		Extra:       req.Metadata,
	})
	if err != nil {
		h.renderIntentError(c, err)
		return
	}
	c.JSON(http.StatusOK, handle)
}

type confirmRequest struct {
	SessionID       string `json:"sessionId" binding:"required"`
	PaymentMethodID string `json:"paymentMethodId" binding:"required"`
}

type confirmResponse struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`
	Outcome   string `json:"outcome"`
	Error     string `json:"error,omitempty"`
}

func (h *CheckoutHandler) ConfirmPayment(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	session, err := h.service.ConfirmPayment(c.Request.Context(), req.SessionID, req.PaymentMethodID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
		case errors.Is(err, domain.ErrNoClientSecret), errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "payment confirmation failed", "session_id", req.SessionID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment confirmation failed"})
		}
		return
	}

	resp := confirmResponse{SessionID: session.ID, State: string(session.State)}
	switch session.State {
	case domain.StateCompleted:
		if session.Completed != nil && session.Completed.Processing {
			resp.Outcome = string(paymentdomain.OutcomeProcessing)
		} else {
			resp.Outcome = string(paymentdomain.OutcomeSucceeded)
		}
	default:
		resp.Outcome = string(paymentdomain.OutcomeFailed)
		resp.Error = session.FailureMessage
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHandler) Confirmation(c *gin.Context) {
	view, err := h.service.Receipt(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout session not found"})
		case errors.Is(err, domain.ErrReceiptConsumed):
			c.JSON(http.StatusGone, gin.H{"error": "receipt already viewed"})
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "failed to render receipt", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render receipt"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

// renderIntentError 建立意图阶段的错误分类：客户端可修正的给 400，
// 提供方故障给 500
func (h *CheckoutHandler) renderIntentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalogdomain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
	case errors.Is(err, domain.ErrFreeEvent),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, paymentdomain.ErrAmountTooSmall),
		errors.Is(err, paymentdomain.ErrInvalidMetadata):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, paymentdomain.ErrIntentCreateFailed):
		logger.Error(c.Request.Context(), "payment provider rejected intent", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment intent"})
	default:
		logger.Error(c.Request.Context(), "failed to create payment intent", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create payment intent"})
	}
}
