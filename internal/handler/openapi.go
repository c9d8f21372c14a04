package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/topicsvc/internal/server"
)

//go:embed static/openapi.json
var openAPIDocument []byte

// OpenAPIHandler serves the OpenAPI document compiled into the binary.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIDocument writes the OpenAPI 3 description of the routes.
//
// Cache-Control is "no-cache" so clients pick up a redeployed document.
func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, openAPIDocument)
}
