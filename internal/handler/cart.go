package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/service"
	"github.com/flicky/go-storefront/internal/session"
)

type CartHandler struct {
	cart  *service.CartService
	store *session.Store
}

func NewCartHandler(cart *service.CartService, store *session.Store) *CartHandler {
	return &CartHandler{cart: cart, store: store}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	result := h.cart.GetCart(c.Request.Context())
	if result.RequireAuth {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AddItem opens the auth modal when the user is not logged in, mirroring
// what the add-to-cart button does.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.cart.AddToCart(c.Request.Context(), req.ProductID, req.Quantity, h.store.OpenAuthModal)
	if result.RequireAuth {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	result := h.cart.RemoveFromCart(c.Request.Context(), orderID)
	if result.RequireAuth {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) Clear(c *gin.Context) {
	result := h.cart.ClearCart(c.Request.Context())
	if result.RequireAuth {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
