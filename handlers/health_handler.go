package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anderskate/async-sms-sending/internal/publisher"
	"github.com/anderskate/async-sms-sending/pkg/redis"
)

// HealthHandler handles health checks.
type HealthHandler struct {
	redis        *redis.Client
	publisher    *publisher.Publisher
	checkTimeout time.Duration
}

func NewHealthHandler(redisClient *redis.Client, pub *publisher.Publisher) *HealthHandler {
	return &HealthHandler{
		redis:        redisClient,
		publisher:    pub,
		checkTimeout: 2 * time.Second,
	}
}

// Health returns overall status, Redis connectivity and the number of
// connected status viewers.
// @Summary Health check
// @Description Returns overall status with Redis connectivity and active subscriber count
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	redisStatus := "up"
	if h.redis == nil {
		redisStatus = "down"
		overallStatus = "down"
	} else if err := h.redis.Ping(ctx); err != nil {
		redisStatus = "down"
		overallStatus = "down"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"redis": map[string]any{
				"status": redisStatus,
			},
			"statusStream": map[string]any{
				"subscribers": h.publisher.SubscriberCount(),
			},
		},
	})
}
