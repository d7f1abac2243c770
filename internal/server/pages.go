package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-showcase/internal/session"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/model"
	"github.com/goliatone/go-showcase/pkg/render"
	"github.com/goliatone/go-showcase/pkg/themes"
)

const (
	formPath = "/widgets/form"
	gridPath = "/widgets/grid"
)

// baseView fills the parts shared by every page and applies a ?theme= or
// ?variant= switch to the session.
func (s *Server) baseView(c *gin.Context, ws *session.Workspace, widget render.Widget) render.View {
	if name, variant := c.Query("theme"), c.Query("variant"); name != "" || variant != "" {
		if sel, err := s.themes.Select(name, variant); err == nil {
			ws.SetTheme(sel.Theme, sel.Variant)
		} else {
			ws.SetFlash("Unknown theme selection.")
		}
	}
	view := render.View{
		Widget: widget,
		Nav: []render.NavItem{
			{ID: string(render.WidgetForm), Label: "Form system", Href: formPath, Active: widget == render.WidgetForm},
			{ID: string(render.WidgetGrid), Label: "Data grid", Href: gridPath, Active: widget == render.WidgetGrid},
		},
		Theme: themes.Resolve(s.themes.SelectOrDefault(ws.Theme())),
		Flash: ws.TakeFlash(),
	}
	return view
}

func (s *Server) formName(raw string) string {
	if name := strings.TrimSpace(raw); name != "" {
		return name
	}
	return s.cfg.Form.Default
}

func (s *Server) formNav(active string) []render.NavItem {
	names := s.defs.Names()
	items := make([]render.NavItem, 0, len(names))
	for _, name := range names {
		def, _ := s.defs.Form(name)
		label := def.Title
		if label == "" {
			label = model.DefaultLabeler(name)
		}
		items = append(items, render.NavItem{
			ID:     name,
			Label:  label,
			Href:   formPath + "?" + url.Values{"form": {name}}.Encode(),
			Active: name == active,
		})
	}
	return items
}

func formRedirect(name string) string {
	return formPath + "?" + url.Values{"form": {name}}.Encode()
}

func (s *Server) formPage(c *gin.Context) {
	ws := workspaceFrom(c)
	name := s.formName(c.Query("form"))
	engine, err := ws.Form(name)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	view := s.baseView(c, ws, render.WidgetForm)
	fv := render.NewFormView(engine.Definition(), engine.State())
	fv.Action = formPath + "/submit"
	fv.ResetAction = formPath + "/reset"
	fv.Forms = s.formNav(name)
	view.Title = fv.Title
	view.Form = &fv
	s.renderView(c, view, "html")
}

// applyPostedValues copies posted inputs into the engine. Unchecked
// checkboxes are absent from the body and become false.
func applyPostedValues(c *gin.Context, engine *form.Engine) error {
	for _, field := range engine.Definition().Fields {
		raw, present := c.GetPostForm(field.Name)
		var value model.Value
		switch {
		case field.Kind == model.FieldKindCheckbox:
			value = model.Coerce(field.Kind, model.Text(raw))
			if !present {
				value = model.Bool(false)
			}
		default:
			value = model.Text(raw)
		}
		if err := engine.SetFieldValue(field.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) formSubmit(c *gin.Context) {
	ws := workspaceFrom(c)
	name := s.formName(c.PostForm("_form"))
	engine, err := ws.Form(name)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	if err := applyPostedValues(c, engine); err != nil {
		respondDomainError(c, err)
		return
	}

	switch err := engine.Submit(c.Request.Context()); {
	case err == nil:
	case errors.Is(err, form.ErrValidation):
	case errors.Is(err, form.ErrSubmitInProgress):
		ws.SetFlash("A submission is already in progress.")
	default:
		s.logger.Printf("form %s: submit: %v", name, err)
	}
	c.Redirect(http.StatusSeeOther, formRedirect(name))
}

func (s *Server) formReset(c *gin.Context) {
	ws := workspaceFrom(c)
	name := s.formName(c.PostForm("_form"))
	engine, err := ws.Form(name)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	engine.Reset()
	c.Redirect(http.StatusSeeOther, formRedirect(name))
}

func (s *Server) gridView(c *gin.Context, ws *session.Workspace) render.View {
	if err := ws.EnsureGrid(c.Request.Context()); err != nil {
		s.logger.Printf("grid load: %v", err)
	}
	view := s.baseView(c, ws, render.WidgetGrid)
	gv := render.NewGridView(ws.Grid().Snapshot())
	view.Title = "Data grid"
	view.Grid = &gv
	return view
}

func (s *Server) gridPage(c *gin.Context) {
	ws := workspaceFrom(c)
	s.renderView(c, s.gridView(c, ws), "html")
}

func (s *Server) gridExport(c *gin.Context) {
	ws := workspaceFrom(c)
	view := s.gridView(c, ws)
	renderer, err := s.renderers.Get("pdf")
	if err != nil {
		respondDomainError(c, err)
		return
	}
	out, err := renderer.Render(c.Request.Context(), view)
	if err != nil {
		s.logger.Printf("grid export: %v", err)
		respondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="employees.pdf"`)
	c.Data(http.StatusOK, renderer.ContentType(), out)
}

// postedFilter reads the filter form. Every input is present on the form, so
// the update replaces the whole filter. A non-empty problem is shown to the
// user as a flash message.
func postedFilter(c *gin.Context) (update grid.FilterUpdate, problem string) {
	search := strings.TrimSpace(c.PostForm("search"))
	department := strings.TrimSpace(c.PostForm("department"))
	status, ok := grid.ParseStatus(c.PostForm("status"))
	if !ok {
		return update, "Unknown status."
	}
	minSalary, ok := postedBound(c.PostForm("minSalary"))
	if !ok {
		return update, salaryProblem
	}
	maxSalary, ok := postedBound(c.PostForm("maxSalary"))
	if !ok {
		return update, salaryProblem
	}
	return grid.FilterUpdate{
		Search:     &search,
		Department: &department,
		Status:     &status,
		MinSalary:  &minSalary,
		MaxSalary:  &maxSalary,
	}, ""
}

const salaryProblem = "Salary bounds must be whole, non-negative numbers."

func postedBound(raw string) (grid.Bound, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return grid.Unbounded(), true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return grid.Bound{}, false
	}
	return grid.BoundOf(v), true
}

func (s *Server) gridFilter(c *gin.Context) {
	ws := workspaceFrom(c)
	if update, problem := postedFilter(c); problem != "" {
		ws.SetFlash(problem)
	} else {
		ws.Grid().SetFilter(update)
	}
	c.Redirect(http.StatusSeeOther, gridPath)
}

func (s *Server) gridResetFilters(c *gin.Context) {
	workspaceFrom(c).Grid().ResetFilters()
	c.Redirect(http.StatusSeeOther, gridPath)
}

func (s *Server) gridSort(c *gin.Context) {
	ws := workspaceFrom(c)
	key, ok := grid.ParseSortKey(c.PostForm("key"))
	if !ok {
		ws.SetFlash("Unknown sort column.")
		c.Redirect(http.StatusSeeOther, gridPath)
		return
	}
	if raw := c.PostForm("direction"); raw != "" {
		dir, ok := grid.ParseDirection(raw)
		if !ok {
			ws.SetFlash("Unknown sort direction.")
			c.Redirect(http.StatusSeeOther, gridPath)
			return
		}
		ws.Grid().SetSort(grid.SortConfig{Key: key, Direction: dir})
	} else {
		ws.Grid().ToggleSort(key)
	}
	c.Redirect(http.StatusSeeOther, gridPath)
}

func (s *Server) gridPageChange(c *gin.Context) {
	ws := workspaceFrom(c)
	page, err := strconv.Atoi(strings.TrimSpace(c.PostForm("page")))
	if err == nil {
		ws.Grid().SetPage(page)
	}
	c.Redirect(http.StatusSeeOther, gridPath)
}

func (s *Server) gridPageSize(c *gin.Context) {
	ws := workspaceFrom(c)
	size, err := strconv.Atoi(strings.TrimSpace(c.PostForm("size")))
	if err == nil {
		err = s.checkPageSize(size)
	}
	if err == nil {
		err = ws.Grid().SetItemsPerPage(size)
	}
	if err != nil {
		ws.SetFlash("Rows per page must be a positive number.")
	}
	c.Redirect(http.StatusSeeOther, gridPath)
}
