package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/internal/registration/application"
	"github.com/wyfcoding/artsfoundation/internal/registration/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// RSVPHandler 免费活动报名 HTTP 接口
type RSVPHandler struct {
	service *application.RSVPService
}

func NewRSVPHandler(service *application.RSVPService) *RSVPHandler {
	return &RSVPHandler{service: service}
}

func (h *RSVPHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/events/rsvp", h.Register)
}

type rsvpRequest struct {
	EventID   int64  `json:"eventId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Attendees int    `json:"attendees" binding:"required,min=1"`
}

func (h *RSVPHandler) Register(c *gin.Context) {
	var req rsvpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rsvp, err := h.service.Register(c.Request.Context(), req.EventID, req.Name, req.Email, req.Attendees)
	if err != nil {
		switch {
		case errors.Is(err, catalogdomain.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		case errors.Is(err, domain.ErrPaidEvent), errors.Is(err, domain.ErrInvalidRSVP):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context(), "failed to register rsvp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register rsvp"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "RSVP confirmed", "rsvp": rsvp})
}
