package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/go-storefront/internal/dto"
	"github.com/flicky/go-storefront/internal/service"
	"github.com/flicky/go-storefront/internal/session"
)

type AuthHandler struct {
	auth  *service.AuthService
	store *session.Store
}

func NewAuthHandler(auth *service.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.auth.Register(c.Request.Context(), req)
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	result := h.auth.Me(c.Request.Context())
	if !result.Success {
		c.JSON(http.StatusUnauthorized, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Session reports the state presentation renders: who is logged in and
// whether the auth prompt is showing.
func (h *AuthHandler) Session(c *gin.Context) {
	resp := dto.SessionResponse{
		Authenticated: h.store.IsAuthenticated(),
		ShowAuthModal: h.store.AuthModalVisible(),
	}
	if user, ok := h.store.CurrentUser(); ok {
		resp.User = user
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) CloseAuthModal(c *gin.Context) {
	h.store.CloseAuthModal()
	c.Status(http.StatusNoContent)
}
