// Package showcase is the top-level entry point for embedding the widgets in
// another program: it loads form definitions, builds validated form engines,
// and loads grids, so callers do not have to wire the sub-packages by hand.
package showcase

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-showcase/pkg/definition"
	"github.com/goliatone/go-showcase/pkg/definition/openapi"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/renderers/html"
	"github.com/goliatone/go-showcase/pkg/validation"
)

// LoadDefinitions reads every form definition under dir, or the embedded set
// when dir is empty, and adds the OpenAPI feedback form unless a definition
// already uses its name.
func LoadDefinitions(ctx context.Context, dir string) (*definition.Store, error) {
	var (
		store *definition.Store
		err   error
	)
	if dir != "" {
		store, err = definition.LoadFS(os.DirFS(dir))
	} else {
		store, err = definition.Embedded()
	}
	if err != nil {
		return nil, fmt.Errorf("showcase: definitions: %w", err)
	}
	if _, exists := store.Form(openapi.FeedbackOperationID); !exists {
		feedback, err := openapi.Feedback(ctx)
		if err != nil {
			return nil, fmt.Errorf("showcase: feedback form: %w", err)
		}
		if err := store.Add(feedback); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// NewForm compiles the validation schema of the named definition and returns
// an engine for it. Extra options are applied after the schema.
func NewForm(store *definition.Store, name string, options ...form.Option) (*form.Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("showcase: %w %q", ErrUnknownForm, name)
	}
	def, ok := store.Form(name)
	if !ok {
		return nil, fmt.Errorf("showcase: %w %q", ErrUnknownForm, name)
	}
	schema, err := validation.Compile(def)
	if err != nil {
		return nil, err
	}
	return form.New(def, append([]form.Option{form.WithSchema(schema)}, options...)...)
}

// LoadGrid builds a grid and fills it from src.
func LoadGrid(ctx context.Context, src grid.Source, options ...grid.Option) (*grid.Grid, error) {
	g := grid.New(options...)
	if err := g.Load(ctx, src); err != nil {
		return nil, err
	}
	return g, nil
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can extend
// them without importing the renderer package.
func EmbeddedTemplates() fs.FS { return html.TemplatesFS() }

// AssetsFS exposes the bundled stylesheet for static serving.
//
//	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServerFS(showcase.AssetsFS())))
func AssetsFS() fs.FS { return html.AssetsFS() }
