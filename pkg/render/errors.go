package render

import "errors"

var (
	// ErrUnsupportedView is returned by renderers that cannot encode the
	// widget carried by a View (for example a PDF renderer given a form).
	ErrUnsupportedView = errors.New("render: unsupported view")
	// ErrRendererNotFound is returned by Registry lookups.
	ErrRendererNotFound = errors.New("render: renderer not found")
)
