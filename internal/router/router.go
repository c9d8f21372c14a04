// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/handler"
	"github.com/deppfellow/topicsvc/internal/middleware"
	"github.com/deppfellow/topicsvc/internal/server"
)

// NewRouter builds the Echo instance with every middleware and route wired.
//
// Middleware order matters: the request id must exist before the New Relic
// transaction and the request logger read it, and Recover sits inside the
// request logger so recovered panics are logged with their final status.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerTopicRoutes(api, h)

	return router
}
