package themes

import theme "github.com/goliatone/go-theme"

const (
	// DefaultTheme is the built-in showcase theme.
	DefaultTheme = "showcase"
	// BaseVariant names the manifest's own tokens, without variant overrides.
	BaseVariant = "light"
	// DarkVariant is the bundled dark palette.
	DarkVariant = "dark"

	// StylesheetAsset is the asset key holding the layout stylesheet.
	StylesheetAsset = "stylesheet"
	// AssetPrefix is where the server mounts bundled assets.
	AssetPrefix = "/assets"
)

// Showcase returns a fresh copy of the built-in manifest.
func Showcase() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-bg":      "#f8fafc",
			"color-surface": "#fff",
			"color-text":    "#0f172a",
			"color-muted":   "#64748b",
			"color-primary": "#2563eb",
			"color-danger":  "#dc2626",
			"color-success": "#16a34a",
			"radius":        "6px",
			"font":          "system-ui, sans-serif",
		},
		Assets: theme.Assets{
			Prefix: AssetPrefix,
			Files: map[string]string{
				StylesheetAsset: "showcase.css",
			},
		},
		Variants: map[string]theme.Variant{
			DarkVariant: {
				Tokens: map[string]string{
					"color-bg":      "#0f172a",
					"color-surface": "#1e293b",
					"color-text":    "#e2e8f0",
					"color-muted":   "#94a3b8",
					"color-primary": "#60a5fa",
					"color-danger":  "#f87171",
					"color-success": "#4ade80",
				},
			},
		},
	}
}
