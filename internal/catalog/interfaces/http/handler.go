package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/artsfoundation/internal/catalog/application"
	"github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// CatalogHandler HTTP 处理器
type CatalogHandler struct {
	catalogService *application.CatalogQueryService
}

// NewCatalogHandler 创建 HTTP 处理器
func NewCatalogHandler(catalogService *application.CatalogQueryService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes 注册路由
func (h *CatalogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/programs", h.ListPrograms)
	api.GET("/events", h.ListEvents)
	api.GET("/events/:id", h.GetEvent)
	api.GET("/products", h.ListProducts)
	api.GET("/artists", h.ListArtists)
}

// ListPrograms 项目列表
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	programs, err := h.catalogService.GetPrograms(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list programs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, programs)
}

// ListEvents 活动列表
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	events, err := h.catalogService.GetEvents(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list events", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent 活动详情
func (h *CatalogHandler) GetEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	event, err := h.catalogService.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		logger.Error(c.Request.Context(), "Failed to get event", "event_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

// ListProducts 商品列表
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.GetProducts(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list products", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListArtists 艺术家列表
func (h *CatalogHandler) ListArtists(c *gin.Context) {
	artists, err := h.catalogService.GetArtists(c.Request.Context())
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to list artists", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, artists)
}
