package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/artsfoundation/internal/newsletter/application"
	"github.com/wyfcoding/artsfoundation/internal/newsletter/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// NewsletterHandler 邮件订阅 HTTP 接口
type NewsletterHandler struct {
	service *application.NewsletterService
}

func NewNewsletterHandler(service *application.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{service: service}
}

func (h *NewsletterHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/newsletter/subscribe", h.Subscribe)
}

type subscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sub, err := h.service.Subscribe(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error(c.Request.Context(), "failed to subscribe", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subscribed to newsletter", "subscription": sub})
}
