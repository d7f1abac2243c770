package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	src := []byte(`
server {
  addr           = ":9090"
  shutdown_grace = "5s"
  cors_origins   = ["http://localhost:5173"]
}

theme {
  variant = "dark"
}

form {
  submit_delay = "800ms"
  failure_rate = 0
}

grid {
  count          = 250
  seed           = 7
  items_per_page = 20
}
`)
	cfg, err := Parse(src, "showcase.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := Default()
	want.Server.Addr = ":9090"
	want.Server.ShutdownGrace = 5 * time.Second
	want.Server.CORSOrigins = []string{"http://localhost:5173"}
	want.Theme.Variant = "dark"
	want.Form.SubmitDelay = 800 * time.Millisecond
	want.Form.FailureRate = 0
	want.Grid.Count = 250
	want.Grid.Seed = 7
	want.Grid.ItemsPerPage = 20
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SHOWCASE_TEST_PORT", "7070")

	cfg, err := Parse([]byte(`server { addr = ":${env.SHOWCASE_TEST_PORT}" }`), "env.hcl")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("expected env expansion, got %q", cfg.Server.Addr)
	}
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"bad duration":  `session { ttl = "soon" }`,
		"failure range": `form { failure_rate = 1.5 }`,
		"page size":     `grid { items_per_page = 0 }`,
		"negative seed": `grid { seed = -1 }`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src), "bad.hcl"); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestParse_RejectsUnknownAttributes(t *testing.T) {
	if _, err := Parse([]byte(`server { port = 80 }`), "bad.hcl"); err == nil {
		t.Fatalf("expected decode error for unknown attribute")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.hcl")
	if err := os.WriteFile(path, []byte(`session { cookie_name = "sid" }`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Session.CookieName != "sid" {
		t.Fatalf("expected cookie name override, got %q", cfg.Session.CookieName)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.hcl")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
