package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	showcase "github.com/goliatone/go-showcase"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/render"
)

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: GetRequestID(c),
	})
}

// respondDomainError maps package errors onto HTTP statuses.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, showcase.ErrUnknownForm):
		respondError(c, http.StatusNotFound, "unknown_form", err.Error())
	case errors.Is(err, form.ErrUnknownField):
		respondError(c, http.StatusNotFound, "unknown_field", err.Error())
	case errors.Is(err, form.ErrSubmitInProgress):
		respondError(c, http.StatusConflict, "submit_in_progress", err.Error())
	case errors.Is(err, grid.ErrInvalidPageSize):
		respondError(c, http.StatusBadRequest, "invalid_page_size", err.Error())
	case errors.Is(err, render.ErrRendererNotFound):
		respondError(c, http.StatusNotAcceptable, "unknown_format", err.Error())
	case errors.Is(err, render.ErrUnsupportedView):
		respondError(c, http.StatusNotAcceptable, "unsupported_view", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

// pickRenderer honours ?format= first, then the first Accept media type the
// registry knows, then falls back to fallback.
func (s *Server) pickRenderer(c *gin.Context, fallback string) (render.Renderer, error) {
	if format := strings.TrimSpace(c.Query("format")); format != "" {
		return s.renderers.Get(format)
	}
	for _, part := range strings.Split(c.GetHeader("Accept"), ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.HasPrefix(part, "*/*") {
			continue
		}
		if renderer, err := s.renderers.ForContentType(part); err == nil {
			return renderer, nil
		}
	}
	return s.renderers.Get(fallback)
}

func (s *Server) renderView(c *gin.Context, view render.View, fallback string) {
	renderer, err := s.pickRenderer(c, fallback)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	out, err := renderer.Render(c.Request.Context(), view)
	if err != nil {
		if !errors.Is(err, render.ErrUnsupportedView) {
			s.logger.Printf("render %s: %v", renderer.Name(), err)
		}
		respondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, renderer.ContentType(), out)
}
