package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/artsfoundation/internal/cart/application"
	"github.com/wyfcoding/artsfoundation/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/artsfoundation/internal/catalog/domain"
	"github.com/wyfcoding/artsfoundation/pkg/logger"
)

// CartHandler 购物车 HTTP 接口
type CartHandler struct {
	service *application.CartService
}

func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) RegisterRoutes(api *gin.RouterGroup) {
	cart := api.Group("/cart/:sessionId")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items", h.UpdateQuantity)
		cart.DELETE("/items/:productId", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

type addItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
}

type updateQuantityRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int   `json:"quantity"`
}

type cartItemResponse struct {
	ProductID int64  `json:"productId"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	SessionID string             `json:"sessionId"`
	Items     []cartItemResponse `json:"items"`
	Total     string             `json:"total"`
}

func toCartResponse(cart *domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			Artist:    item.Artist,
			Image:     item.Image,
			Price:     item.UnitPrice.StringFixed(2),
			Quantity:  item.Quantity,
		})
	}
	return cartResponse{
		SessionID: cart.SessionID,
		Items:     items,
		Total:     cart.Total().StringFixed(2),
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.service.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to load cart", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.service.AddItem(c.Request.Context(), c.Param("sessionId"), req.ProductID)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		logger.Error(c.Request.Context(), "failed to add cart item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add cart item"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cart, err := h.service.UpdateQuantity(c.Request.Context(), c.Param("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to update cart item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update cart item"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	cart, err := h.service.RemoveItem(c.Request.Context(), c.Param("sessionId"), productID)
	if err != nil {
		logger.Error(c.Request.Context(), "failed to remove cart item", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove cart item"})
		return
	}
	c.JSON(http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), c.Param("sessionId")); err != nil {
		logger.Error(c.Request.Context(), "failed to clear cart", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
