package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the topic API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Root.Liveness)

	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
}
