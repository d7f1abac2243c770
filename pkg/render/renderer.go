package render

import "context"

// Renderer encodes a View into bytes of a single content type.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}
