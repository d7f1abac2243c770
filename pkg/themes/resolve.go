package themes

import (
	"net/url"
	"path"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-showcase/pkg/render"
)

// Tokens merges the selected variant's tokens over the manifest tokens.
func Tokens(sel *theme.Selection) map[string]string {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	out := make(map[string]string, len(sel.Manifest.Tokens))
	for key, value := range sel.Manifest.Tokens {
		out[key] = value
	}
	if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
		for key, value := range variant.Tokens {
			out[key] = value
		}
	}
	return out
}

// AssetURL resolves an asset key for the selection. Variant files win over
// base files; a variant without a prefix inherits the manifest prefix.
func AssetURL(sel *theme.Selection, key string) string {
	if sel == nil || sel.Manifest == nil || key == "" {
		return ""
	}
	prefix := sel.Manifest.Assets.Prefix
	file := sel.Manifest.Assets.Files[key]
	if variant, ok := sel.Manifest.Variants[sel.Variant]; ok {
		if name, ok := variant.Assets.Files[key]; ok {
			file = name
			if variant.Assets.Prefix != "" {
				prefix = variant.Assets.Prefix
			}
		}
	}
	if file == "" {
		return ""
	}
	if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	if prefix == "" {
		return file
	}
	if strings.Contains(prefix, "://") {
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
	return path.Join(prefix, file)
}

// Resolve projects a selection into the view consumed by the HTML layout.
// CSS variables are sorted by name so output is stable.
func Resolve(sel *theme.Selection) render.ThemeView {
	if sel == nil {
		return render.ThemeView{}
	}
	view := render.ThemeView{Name: sel.Theme, Variant: sel.Variant}

	tokens := Tokens(sel)
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		view.CSSVars = append(view.CSSVars, render.CSSVar{Name: "--" + key, Value: tokens[key]})
	}

	if href := AssetURL(sel, StylesheetAsset); href != "" {
		view.Stylesheets = append(view.Stylesheets, href)
	}

	view.Variants = variantNav(sel)
	return view
}

func variantNav(sel *theme.Selection) []render.NavItem {
	if sel.Manifest == nil || len(sel.Manifest.Variants) == 0 {
		return nil
	}
	names := []string{BaseVariant}
	for name := range sel.Manifest.Variants {
		if name != BaseVariant {
			names = append(names, name)
		}
	}
	slices.Sort(names[1:])
	items := make([]render.NavItem, 0, len(names))
	for _, name := range names {
		q := url.Values{"theme": {sel.Theme}, "variant": {name}}
		items = append(items, render.NavItem{
			ID:     name,
			Label:  strings.ToUpper(name[:1]) + name[1:],
			Href:   "?" + q.Encode(),
			Active: name == sel.Variant,
		})
	}
	return items
}
