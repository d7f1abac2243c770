package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-showcase/internal/session"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/model"
	"github.com/goliatone/go-showcase/pkg/render"
)

// FormResponse is the JSON shape of a form: the render-ready view plus the
// raw engine state.
type FormResponse struct {
	Form  render.FormView `json:"form"`
	State form.State      `json:"state"`
}

type fieldValueRequest struct {
	Value any `json:"value"`
}

type fieldErrorRequest struct {
	Message string `json:"message"`
}

type pageRequest struct {
	Page int `json:"page"`
}

type pageSizeRequest struct {
	Size int `json:"size" binding:"required"`
}

type sortRequest struct {
	Key       string `json:"key" binding:"required"`
	Direction string `json:"direction"`
}

func (s *Server) checkPageSize(n int) error {
	if limit := s.cfg.Grid.MaxPageSize; limit > 0 && n > limit {
		return fmt.Errorf("%w: %d exceeds %d", grid.ErrInvalidPageSize, n, limit)
	}
	return nil
}

func (s *Server) apiForms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.formNav(s.cfg.Form.Default)})
}

func (s *Server) apiEngine(c *gin.Context) (*form.Engine, bool) {
	engine, err := workspaceFrom(c).Form(c.Param("name"))
	if err != nil {
		respondDomainError(c, err)
		return nil, false
	}
	return engine, true
}

func writeForm(c *gin.Context, status int, engine *form.Engine) {
	state := engine.State()
	c.JSON(status, FormResponse{
		Form:  render.NewFormView(engine.Definition(), state),
		State: state,
	})
}

func (s *Server) apiFormState(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	writeForm(c, http.StatusOK, engine)
}

func (s *Server) apiSetFieldValue(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	var req fieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	value, err := model.ValueOf(req.Value)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_value", err.Error())
		return
	}
	if err := engine.SetFieldValue(c.Param("field"), value); err != nil {
		respondDomainError(c, err)
		return
	}
	writeForm(c, http.StatusOK, engine)
}

func (s *Server) apiSetFieldError(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	var req fieldErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := engine.SetFieldError(c.Param("field"), req.Message); err != nil {
		respondDomainError(c, err)
		return
	}
	writeForm(c, http.StatusOK, engine)
}

func (s *Server) apiTouchField(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	if err := engine.SetFieldTouched(c.Param("field")); err != nil {
		respondDomainError(c, err)
		return
	}
	writeForm(c, http.StatusOK, engine)
}

func (s *Server) apiBlurField(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	if _, err := engine.BlurField(c.Param("field")); err != nil {
		respondDomainError(c, err)
		return
	}
	writeForm(c, http.StatusOK, engine)
}

// apiValidateField checks a candidate value without touching state.
func (s *Server) apiValidateField(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	field := c.Param("field")
	def, known := engine.Definition().Field(field)
	if !known {
		respondDomainError(c, fmt.Errorf("%w %q", form.ErrUnknownField, field))
		return
	}
	var req fieldValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	value, err := model.ValueOf(req.Value)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_value", err.Error())
		return
	}
	msg := engine.ValidateField(field, model.Coerce(def.Kind, value))
	c.JSON(http.StatusOK, gin.H{"field": field, "valid": msg == "", "error": msg})
}

// apiSubmit answers 200 on success, 422 when fields are invalid, and 502 when
// the backend rejects the submission. The body is the form either way.
func (s *Server) apiSubmit(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	err := engine.Submit(c.Request.Context())
	switch {
	case err == nil:
		writeForm(c, http.StatusOK, engine)
	case errors.Is(err, form.ErrValidation):
		writeForm(c, http.StatusUnprocessableEntity, engine)
	case errors.Is(err, form.ErrSubmitInProgress):
		respondDomainError(c, err)
	default:
		s.logger.Printf("form %s: submit: %v", c.Param("name"), err)
		writeForm(c, http.StatusBadGateway, engine)
	}
}

func (s *Server) apiReset(c *gin.Context) {
	engine, ok := s.apiEngine(c)
	if !ok {
		return
	}
	engine.Reset()
	writeForm(c, http.StatusOK, engine)
}

func (s *Server) apiGridWorkspace(c *gin.Context) *session.Workspace {
	ws := workspaceFrom(c)
	if err := ws.EnsureGrid(c.Request.Context()); err != nil {
		s.logger.Printf("grid load: %v", err)
	}
	return ws
}

func writeGrid(c *gin.Context, ws *session.Workspace) {
	c.JSON(http.StatusOK, ws.Grid().Snapshot())
}

func (s *Server) apiGrid(c *gin.Context) {
	writeGrid(c, s.apiGridWorkspace(c))
}

func (s *Server) apiGridFilter(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	var update grid.FilterUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}
	ws.Grid().SetFilter(update)
	writeGrid(c, ws)
}

func (s *Server) apiGridResetFilters(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	ws.Grid().ResetFilters()
	writeGrid(c, ws)
}

func (s *Server) apiGridSort(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	key, ok := grid.ParseSortKey(req.Key)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_sort", fmt.Sprintf("unknown sort key %q", req.Key))
		return
	}
	dir, ok := grid.ParseDirection(req.Direction)
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_sort", fmt.Sprintf("unknown direction %q", req.Direction))
		return
	}
	ws.Grid().SetSort(grid.SortConfig{Key: key, Direction: dir})
	writeGrid(c, ws)
}

func (s *Server) apiGridClearSort(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	ws.Grid().ClearSort()
	writeGrid(c, ws)
}

func (s *Server) apiGridToggleSort(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	key, ok := grid.ParseSortKey(c.Param("key"))
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_sort", fmt.Sprintf("unknown sort key %q", c.Param("key")))
		return
	}
	ws.Grid().ToggleSort(key)
	writeGrid(c, ws)
}

func (s *Server) apiGridPage(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	var req pageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	ws.Grid().SetPage(req.Page)
	writeGrid(c, ws)
}

func (s *Server) apiGridPageSize(c *gin.Context) {
	ws := s.apiGridWorkspace(c)
	var req pageSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if err := s.checkPageSize(req.Size); err != nil {
		respondDomainError(c, err)
		return
	}
	if err := ws.Grid().SetItemsPerPage(req.Size); err != nil {
		respondDomainError(c, err)
		return
	}
	writeGrid(c, ws)
}
