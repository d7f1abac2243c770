package definition

import (
	"embed"
	"io/fs"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled form definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		panic(err)
	}
	return sub
}

// Embedded loads the bundled definitions.
func Embedded() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
