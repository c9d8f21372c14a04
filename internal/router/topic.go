package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/handler"
)

func registerTopicRoutes(api *echo.Group, h *handler.Handlers) {
	topics := api.Group("/topics")

	topics.GET("", handler.Handle(
		h.Topic.Handler,
		h.Topic.ListTopics,
		http.StatusOK,
		handler.NewListTopicsQuery,
	))
}
