package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/middleware"
	"github.com/deppfellow/topicsvc/internal/server"
	"github.com/deppfellow/topicsvc/internal/service"
)

const storeCheckTimeout = 5 * time.Second

// HealthHandler exposes /status for uptime monitors and load balancers.
type HealthHandler struct {
	Handler
	topics *service.TopicService
}

// NewHealthHandler constructs a HealthHandler that probes the topic store.
func NewHealthHandler(s *server.Server, topics *service.TopicService) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		topics:  topics,
	}
}

// CheckHealth loads the topic store and reports the outcome.
//
// It returns 200 when the store is readable and 503 otherwise. The body always
// carries status, timestamp, environment and checks.store.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), storeCheckTimeout)
	defer cancel()

	storeStart := time.Now()
	count, err := h.topics.Count(ctx)
	storeDuration := time.Since(storeStart)

	if err != nil {
		response["status"] = "unhealthy"
		response["checks"] = map[string]interface{}{
			"store": map[string]interface{}{
				"status":        "unhealthy",
				"path":          h.server.Config.Store.Path,
				"response_time": storeDuration.String(),
				"error":         err.Error(),
			},
		}

		logger.Error().
			Err(err).
			Dur("response_time", storeDuration).
			Msg("store health check failed")

		if app := h.server.LoggerService.GetApplication(); app != nil {
			app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
				"check_type":       "store",
				"operation":        "health_check",
				"error_type":       "store_unhealthy",
				"response_time_ms": storeDuration.Milliseconds(),
				"error_message":    err.Error(),
			})
		}

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	response["checks"] = map[string]interface{}{
		"store": map[string]interface{}{
			"status":        "healthy",
			"path":          h.server.Config.Store.Path,
			"topics":        count,
			"response_time": storeDuration.String(),
		},
	}

	logger.Info().
		Int("topics", count).
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}
