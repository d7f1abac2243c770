// Package json renders views as JSON documents for API clients.
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-showcase/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints output using indent per level.
func WithIndent(indent string) Option {
	return func(r *Renderer) { r.indent = indent }
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return "json" }

func (r *Renderer) ContentType() string { return "application/json" }

// Render encodes view. Only the active widget is emitted.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch view.Widget {
	case render.WidgetForm:
		view.Grid = nil
	case render.WidgetGrid:
		view.Form = nil
	default:
		return nil, fmt.Errorf("%w: widget %q", render.ErrUnsupportedView, view.Widget)
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(view, "", r.indent)
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: %w", err)
	}
	return out, nil
}
