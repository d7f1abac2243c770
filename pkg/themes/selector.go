package themes

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	theme "github.com/goliatone/go-theme"
)

var (
	// ErrUnknownTheme is returned when no manifest matches the requested name.
	ErrUnknownTheme = errors.New("themes: unknown theme")
	// ErrUnknownVariant is returned when the manifest has no such variant.
	ErrUnknownVariant = errors.New("themes: unknown variant")
)

// Selector resolves theme/variant names against a fixed manifest set.
type Selector struct {
	manifests      map[string]*theme.Manifest
	provider       theme.ThemeProvider
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests (the built-in showcase manifest when none
// are given) and uses defaultTheme/defaultVariant for blank requests.
func NewSelector(defaultTheme, defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{Showcase()}
	}
	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   strings.TrimSpace(defaultTheme),
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("themes: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}
	s.provider = registry
	if s.defaultTheme == "" {
		s.defaultTheme = DefaultTheme
	}
	if _, ok := s.manifests[s.defaultTheme]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, s.defaultTheme)
	}
	if _, err := s.Select(s.defaultTheme, s.defaultVariant); err != nil {
		return nil, err
	}
	return s, nil
}

// Provider exposes the go-theme registry backing the selector.
func (s *Selector) Provider() theme.ThemeProvider {
	return s.provider
}

// Names lists the registered theme names in sorted order.
func (s *Selector) Names() []string {
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Select implements theme.ThemeSelector. Blank names fall back to the
// selector defaults; BaseVariant and "" both select the manifest tokens.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.ToLower(strings.TrimSpace(variant))
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = strings.ToLower(s.defaultVariant)
		}
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	if variant == "" {
		variant = BaseVariant
	}
	if variant != BaseVariant {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q for theme %q", ErrUnknownVariant, variant, name)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// SelectOrDefault is Select that falls back to the defaults when the request
// names something unknown.
func (s *Selector) SelectOrDefault(name, variant string) *theme.Selection {
	if sel, err := s.Select(name, variant); err == nil {
		return sel
	}
	if sel, err := s.Select(name, ""); err == nil {
		return sel
	}
	sel, _ := s.Select("", "")
	return sel
}
