package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/model"
	"github.com/deppfellow/topicsvc/internal/server"
	"github.com/deppfellow/topicsvc/internal/service"
)

// TopicHandler serves /api/topics.
type TopicHandler struct {
	Handler
	topics *service.TopicService
}

// NewTopicHandler constructs a TopicHandler backed by the topic service.
func NewTopicHandler(s *server.Server, topics *service.TopicService) *TopicHandler {
	return &TopicHandler{
		Handler: NewHandler(s),
		topics:  topics,
	}
}

// ListTopics returns the projected topics matching the bound query.
//
// Use with Handle and NewListTopicsQuery.
func (h *TopicHandler) ListTopics(c echo.Context, q *model.ListTopicsQuery) ([]model.ProjectedTopic, error) {
	return h.topics.List(c.Request().Context(), q)
}

// NewListTopicsQuery allocates the per-request DTO for ListTopics.
func NewListTopicsQuery() *model.ListTopicsQuery {
	return &model.ListTopicsQuery{}
}
