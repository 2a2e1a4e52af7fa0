package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/go-storefront/internal/api"
)

// StatusHandler backs the landing page's status banner: is the backend
// reachable, and is the optional cache up.
type StatusHandler struct {
	client      *api.Client
	redisClient *redis.Client
}

func NewStatusHandler(client *api.Client, redisClient *redis.Client) *StatusHandler {
	return &StatusHandler{client: client, redisClient: redisClient}
}

func (h *StatusHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StatusHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.client.Probe(ctx); err != nil {
		backend := "unreachable"
		if errors.Is(err, api.ErrTimeout) {
			backend = "timeout"
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "backend": backend})
		return
	}

	resp := gin.H{"status": "ok", "backend": "connected"}
	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			resp["cache"] = "unavailable"
		} else {
			resp["cache"] = "connected"
		}
	}
	c.JSON(http.StatusOK, resp)
}
