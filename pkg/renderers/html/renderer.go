// Package html renders showcase pages with pongo2 templates.
package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-showcase/pkg/render"
	rendertemplate "github.com/goliatone/go-showcase/pkg/render/template"
	"github.com/goliatone/go-showcase/pkg/render/template/pongo"
)

// PageTemplate is the entry template every page renders through.
const PageTemplate = "page.tpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	engine     rendertemplate.TemplateRenderer
}

// WithTemplatesFS replaces the bundled templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.templateFS = os.DirFS(dir)
		}
	}
}

// WithTemplateRenderer injects a template engine.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// Renderer implements render.Renderer for full HTML pages.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer and registers the money and number filters.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		pe, err := pongo.New(pongo.WithFS(cfg.templateFS), pongo.WithExtension(".tpl"))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure templates: %w", err)
		}
		engine = pe
	}

	filters := map[string]func(any, any) (any, error){
		"money":  formatMoney,
		"number": formatNumber,
	}
	for name, fn := range filters {
		if err := engine.RegisterFilter(name, fn); err != nil && !errors.Is(err, pongo.ErrFilterExists) {
			return nil, fmt.Errorf("html renderer: register filter %q: %w", name, err)
		}
	}

	return &Renderer{templates: engine}, nil
}

func (r *Renderer) Name() string { return "html" }

func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render executes the page template for view.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch view.Widget {
	case render.WidgetForm:
		if view.Form == nil {
			return nil, fmt.Errorf("%w: form widget without form", render.ErrUnsupportedView)
		}
	case render.WidgetGrid:
		if view.Grid == nil {
			return nil, fmt.Errorf("%w: grid widget without grid", render.ErrUnsupportedView)
		}
	default:
		return nil, fmt.Errorf("%w: widget %q", render.ErrUnsupportedView, view.Widget)
	}

	out, err := r.templates.RenderTemplate(PageTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return []byte(out), nil
}
