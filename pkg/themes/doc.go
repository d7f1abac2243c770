// Package themes ships the built-in go-theme manifests for the showcase and
// turns a theme selection into the CSS variables and stylesheet URLs the HTML
// layout consumes.
package themes
