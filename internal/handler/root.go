package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/server"
)

// LivenessMessage is the body of GET /.
const LivenessMessage = "Topics server working!"

type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{Handler: NewHandler(s)}
}

// Liveness answers without touching the store.
func (h *RootHandler) Liveness(c echo.Context) error {
	return c.String(http.StatusOK, LivenessMessage)
}
