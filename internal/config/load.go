package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

type fileConfig struct {
	Server  *serverBlock  `hcl:"server,block"`
	Theme   *themeBlock   `hcl:"theme,block"`
	Form    *formBlock    `hcl:"form,block"`
	Grid    *gridBlock    `hcl:"grid,block"`
	Session *sessionBlock `hcl:"session,block"`
}

type serverBlock struct {
	Addr          *string  `hcl:"addr,optional"`
	ShutdownGrace *string  `hcl:"shutdown_grace,optional"`
	CORSOrigins   []string `hcl:"cors_origins,optional"`
}

type themeBlock struct {
	Name    *string `hcl:"name,optional"`
	Variant *string `hcl:"variant,optional"`
}

type formBlock struct {
	DefinitionsDir  *string  `hcl:"definitions_dir,optional"`
	Default         *string  `hcl:"default,optional"`
	SubmitDelay     *string  `hcl:"submit_delay,optional"`
	FailureRate     *float64 `hcl:"failure_rate,optional"`
	FallbackMessage *string  `hcl:"fallback_message,optional"`
}

type gridBlock struct {
	Count        *int    `hcl:"count,optional"`
	Seed         *int64  `hcl:"seed,optional"`
	LoadDelay    *string `hcl:"load_delay,optional"`
	ItemsPerPage *int    `hcl:"items_per_page,optional"`
	MaxPageSize  *int    `hcl:"max_page_size,optional"`
}

type sessionBlock struct {
	TTL        *string `hcl:"ttl,optional"`
	CookieName *string `hcl:"cookie_name,optional"`
}

// Load reads the HCL file at path and overlays it on Default. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}
	return decode(file, path)
}

// Parse decodes HCL source; filename is only used in diagnostics.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}
	return decode(file, filename)
}

func decode(file *hcl.File, name string) (Config, error) {
	var raw fileConfig
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &raw); diags.HasErrors() {
		return Config{}, fmt.Errorf("config: decode %s: %s", name, diags.Error())
	}
	cfg := Default()
	if err := raw.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		env[key] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(env)},
	}
}

func (f fileConfig) apply(cfg *Config) error {
	if b := f.Server; b != nil {
		setString(&cfg.Server.Addr, b.Addr)
		if err := setDuration(&cfg.Server.ShutdownGrace, b.ShutdownGrace, "server.shutdown_grace"); err != nil {
			return err
		}
		if b.CORSOrigins != nil {
			cfg.Server.CORSOrigins = append([]string{}, b.CORSOrigins...)
		}
	}
	if b := f.Theme; b != nil {
		setString(&cfg.Theme.Name, b.Name)
		setString(&cfg.Theme.Variant, b.Variant)
	}
	if b := f.Form; b != nil {
		setString(&cfg.Form.DefinitionsDir, b.DefinitionsDir)
		setString(&cfg.Form.Default, b.Default)
		setString(&cfg.Form.FallbackMessage, b.FallbackMessage)
		if b.FailureRate != nil {
			cfg.Form.FailureRate = *b.FailureRate
		}
		if err := setDuration(&cfg.Form.SubmitDelay, b.SubmitDelay, "form.submit_delay"); err != nil {
			return err
		}
	}
	if b := f.Grid; b != nil {
		setInt(&cfg.Grid.Count, b.Count)
		setInt(&cfg.Grid.ItemsPerPage, b.ItemsPerPage)
		setInt(&cfg.Grid.MaxPageSize, b.MaxPageSize)
		if b.Seed != nil {
			if *b.Seed < 0 {
				return fmt.Errorf("%w: grid.seed is negative", ErrInvalid)
			}
			cfg.Grid.Seed = uint64(*b.Seed)
		}
		if err := setDuration(&cfg.Grid.LoadDelay, b.LoadDelay, "grid.load_delay"); err != nil {
			return err
		}
	}
	if b := f.Session; b != nil {
		setString(&cfg.Session.CookieName, b.CookieName)
		if err := setDuration(&cfg.Session.TTL, b.TTL, "session.ttl"); err != nil {
			return err
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, name string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*v))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}
	*dst = d
	return nil
}
