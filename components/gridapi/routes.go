package gridapi

import (
	"errors"
	"net/http"
	"strings"
)

// ErrMissingMux is returned when routes are registered on a nil mux.
var ErrMissingMux = errors.New("gridapi: missing mux")

// Mux is satisfied by *http.ServeMux and by adapters around other routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the route the handler is served on under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	return joinRoute(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes mounts a handler built from fns under basePath.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions mounts a handler built from opts under basePath and
// returns the registered pattern.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", ErrMissingMux
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := joinRoute(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(opts))
	return pattern, nil
}

func joinRoute(basePath, route string) string {
	route = "/" + strings.Trim(strings.TrimSpace(route), "/")
	base := strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "" {
		return route
	}
	if route == "/" {
		return "/" + base
	}
	return "/" + base + route
}
