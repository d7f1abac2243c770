package gridapi

import (
	"context"
	"net/http"
)

// Component bundles the records handler with its options so the same
// configuration serves HTTP and in-process queries.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler for record queries.
func (c *Component) Handler() http.Handler {
	return HandlerWithOptions(c.Options())
}

// Fetch answers q without going through HTTP. The page size is clamped the
// same way the handler clamps it.
func (c *Component) Fetch(ctx context.Context, q Query) (Response, error) {
	opts := c.Options()
	records, err := loadRecords(ctx, opts)
	if err != nil {
		return Response{}, err
	}
	q.PageSize = clampPageSize(q.PageSize, opts)
	return Build(records, q), nil
}

// RegisterRoutes mounts the handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, c.Options())
}
