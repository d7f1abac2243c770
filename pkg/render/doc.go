// Package render turns widget state into output. Widgets produce a View; a
// Renderer encodes the View as HTML, JSON, PDF, or anything else registered
// under a name.
package render
