// Package config loads the showcase server configuration from an HCL file.
//
// Every setting has a default; a file only needs the blocks and attributes it
// wants to change:
//
//	server {
//	  addr           = ":9090"
//	  shutdown_grace = "5s"
//	  cors_origins   = ["http://localhost:5173"]
//	}
//
//	form {
//	  submit_delay = "800ms"
//	  failure_rate = 0.3
//	}
//
// String attributes may reference environment variables through the env
// object, e.g. addr = ":${env.PORT}".
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalid reports a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid value")

// Config is the resolved server configuration.
type Config struct {
	Server  Server
	Theme   Theme
	Form    Form
	Grid    Grid
	Session Session
}

type Server struct {
	Addr          string
	ShutdownGrace time.Duration
	CORSOrigins   []string
}

type Theme struct {
	Name    string
	Variant string
}

type Form struct {
	// DefinitionsDir, when set, replaces the embedded form definitions.
	DefinitionsDir  string
	Default         string
	SubmitDelay     time.Duration
	FailureRate     float64
	FallbackMessage string
}

type Grid struct {
	Count        int
	Seed         uint64
	LoadDelay    time.Duration
	ItemsPerPage int
	MaxPageSize  int
}

type Session struct {
	TTL        time.Duration
	CookieName string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:          ":8080",
			ShutdownGrace: 10 * time.Second,
		},
		Theme: Theme{
			Name:    "showcase",
			Variant: "light",
		},
		Form: Form{
			Default:         "registration",
			SubmitDelay:     1500 * time.Millisecond,
			FailureRate:     0.2,
			FallbackMessage: "Submission failed. Please try again.",
		},
		Grid: Grid{
			Count:        100,
			Seed:         42,
			LoadDelay:    500 * time.Millisecond,
			ItemsPerPage: 10,
			MaxPageSize:  100,
		},
		Session: Session{
			TTL:        30 * time.Minute,
			CookieName: "showcase_session",
		},
	}
}

// Validate checks ranges that the rest of the server relies on.
func (c Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	case c.Server.ShutdownGrace < 0:
		return fmt.Errorf("%w: server.shutdown_grace is negative", ErrInvalid)
	case c.Form.SubmitDelay < 0:
		return fmt.Errorf("%w: form.submit_delay is negative", ErrInvalid)
	case c.Form.FailureRate < 0 || c.Form.FailureRate > 1:
		return fmt.Errorf("%w: form.failure_rate %v not in [0, 1]", ErrInvalid, c.Form.FailureRate)
	case c.Grid.Count <= 0:
		return fmt.Errorf("%w: grid.count must be positive", ErrInvalid)
	case c.Grid.LoadDelay < 0:
		return fmt.Errorf("%w: grid.load_delay is negative", ErrInvalid)
	case c.Grid.ItemsPerPage <= 0:
		return fmt.Errorf("%w: grid.items_per_page must be positive", ErrInvalid)
	case c.Grid.MaxPageSize < c.Grid.ItemsPerPage:
		return fmt.Errorf("%w: grid.max_page_size below items_per_page", ErrInvalid)
	case c.Session.TTL <= 0:
		return fmt.Errorf("%w: session.ttl must be positive", ErrInvalid)
	case c.Session.CookieName == "":
		return fmt.Errorf("%w: session.cookie_name is empty", ErrInvalid)
	}
	return nil
}
