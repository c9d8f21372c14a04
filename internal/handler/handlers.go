// Package handler is the HTTP layer that sits right after the router.
//
// It binds and validates requests through the validation package, calls the
// service layer and writes responses. Errors go back to the global error
// handler untouched.
package handler

import (
	"github.com/deppfellow/topicsvc/internal/server"
	"github.com/deppfellow/topicsvc/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Root    *RootHandler
	Topic   *TopicHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s),
		Topic:   NewTopicHandler(s, services.Topics),
		Health:  NewHealthHandler(s, services.Topics),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
