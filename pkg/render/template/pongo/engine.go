// Package pongo implements template.TemplateRenderer on top of pongo2.
package pongo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-showcase/pkg/render/template"
)

// ErrFilterExists is returned when registering a filter name already known to
// pongo2.
var ErrFilterExists = errors.New("pongo: filter already exists")

// Option configures an Engine.
type Option func(*config)

type config struct {
	name      string
	baseDir   string
	templates fs.FS
	extension string
	globals   map[string]any
}

// WithFS loads templates from files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) { cfg.templates = files }
}

// WithBaseDir loads templates from a directory on disk. It takes precedence
// over WithFS so local overrides can shadow embedded templates.
func WithBaseDir(dir string) Option {
	return func(cfg *config) { cfg.baseDir = strings.TrimSpace(dir) }
}

// WithExtension sets the suffix appended to template names ("tpl" or ".tpl").
func WithExtension(ext string) Option {
	return func(cfg *config) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.extension = ext
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) {
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[key] = value
		}
	}
}

// WithSetName names the pongo2 template set (used in debug output).
func WithSetName(name string) Option {
	return func(cfg *config) { cfg.name = strings.TrimSpace(name) }
}

// Engine caches compiled templates of a pongo2 set.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	compiled  map[string]*pongo2.Template
	extension string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// New builds an engine. At least one of WithFS or WithBaseDir is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{name: "showcase", extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		local, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("pongo: local loader: %w", err)
		}
		loaders = append(loaders, local)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}
	if len(loaders) == 0 {
		return nil, errors.New("pongo: a template directory or fs.FS is required")
	}

	engine := &Engine{
		set:       pongo2.NewSet(cfg.name, loaders...),
		compiled:  make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}
	if err := engine.GlobalContext(cfg.globals); err != nil {
		return nil, err
	}
	return engine, nil
}

// RenderTemplate executes the named template. The extension is appended when
// missing. Output is returned and copied to every writer in out.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}
	tmpl, err := e.lookup(path)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, path, data, out)
}

// RenderString compiles and executes an inline template.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("pongo: parse inline template: %w", err)
	}
	return e.execute(tmpl, "inline", data, out)
}

// RegisterFilter installs a filter. pongo2 filters are process-wide, so a
// name that already exists is left untouched and reported.
func (e *Engine) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("pongo: filter name and function are required")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("%w: %q", ErrFilterExists, name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var p any
		if param != nil {
			p = param.Interface()
		}
		result, err := fn(in.Interface(), p)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(result), nil
	})
}

// GlobalContext merges data into the set globals.
func (e *Engine) GlobalContext(data map[string]any) error {
	if len(data) == 0 {
		return nil
	}
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("pongo: globals: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("pongo: convert data for %s: %w", name, err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(ctx, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("pongo: execute %s: %w", name, err)
	}

	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.compiled[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.compiled[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("pongo: load %s: %w", path, err)
	}
	e.compiled[path] = tmpl
	return tmpl, nil
}

// toContext normalises data into plain maps, slices, and scalars by way of
// its JSON encoding, so templates see the same field names as API clients.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	out := pongo2.Context{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("data must encode as a JSON object: %w", err)
	}
	for key, value := range out {
		out[key] = integralNumbers(value)
	}
	return out, nil
}

// integralNumbers turns whole float64 values produced by JSON decoding back
// into ints; pongo2 prints floats with six decimals.
func integralNumbers(value any) any {
	switch v := value.(type) {
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
			return int(v)
		}
		return v
	case map[string]any:
		for key, nested := range v {
			v[key] = integralNumbers(nested)
		}
		return v
	case []any:
		for i, nested := range v {
			v[i] = integralNumbers(nested)
		}
		return v
	default:
		return value
	}
}
