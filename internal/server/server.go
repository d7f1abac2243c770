// Package server wires the widgets into a gin application: server-rendered
// widget pages, a JSON API over the same per-session state, and the stateless
// records endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	showcase "github.com/goliatone/go-showcase"
	"github.com/goliatone/go-showcase/components/gridapi"
	"github.com/goliatone/go-showcase/internal/config"
	"github.com/goliatone/go-showcase/internal/demo"
	"github.com/goliatone/go-showcase/internal/session"
	"github.com/goliatone/go-showcase/pkg/definition"
	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/grid/mockdata"
	"github.com/goliatone/go-showcase/pkg/render"
	"github.com/goliatone/go-showcase/pkg/renderers/html"
	jsonrenderer "github.com/goliatone/go-showcase/pkg/renderers/json"
	"github.com/goliatone/go-showcase/pkg/renderers/pdf"
	"github.com/goliatone/go-showcase/pkg/themes"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and lifecycle lines.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefinitions replaces the form definitions loaded from config.
func WithDefinitions(store *definition.Store) Option {
	return func(s *Server) { s.defs = store }
}

// WithSubmitFunc replaces the simulated submit backend.
func WithSubmitFunc(fn form.SubmitFunc) Option {
	return func(s *Server) { s.submit = fn }
}

// WithGridSource replaces the generated grid records.
func WithGridSource(src grid.Source) Option {
	return func(s *Server) { s.source = src }
}

// WithRenderers replaces the renderer registry.
func WithRenderers(registry *render.Registry) Option {
	return func(s *Server) { s.renderers = registry }
}

// Server is the showcase HTTP application.
type Server struct {
	cfg       config.Config
	logger    *log.Logger
	defs      *definition.Store
	submit    form.SubmitFunc
	source    grid.Source
	renderers *render.Registry
	themes    *themes.Selector
	sessions  *session.Store
	records   *gridapi.Component
	engine    *gin.Engine
}

// New builds the server from cfg.
func New(ctx context.Context, cfg config.Config, options ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Server{
		cfg:    cfg,
		logger: log.New(os.Stderr, "showcase: ", log.LstdFlags),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	if s.defs == nil {
		defs, err := showcase.LoadDefinitions(ctx, cfg.Form.DefinitionsDir)
		if err != nil {
			return nil, err
		}
		s.defs = defs
	}
	if s.defs.Empty() {
		return nil, errors.New("server: no form definitions")
	}
	if _, ok := s.defs.Form(cfg.Form.Default); !ok {
		return nil, fmt.Errorf("server: default form %q not found", cfg.Form.Default)
	}

	if s.submit == nil {
		sub := &demo.Submitter{
			Delay:       cfg.Form.SubmitDelay,
			FailureRate: cfg.Form.FailureRate,
			Logger:      s.logger,
		}
		s.submit = sub.Func()
	}
	if s.source == nil {
		s.source = mockdata.Source{Count: cfg.Grid.Count, Seed: cfg.Grid.Seed, Delay: cfg.Grid.LoadDelay}
	}
	if s.renderers == nil {
		registry, err := defaultRenderers()
		if err != nil {
			return nil, err
		}
		s.renderers = registry
	}

	selector, err := themes.NewSelector(cfg.Theme.Name, cfg.Theme.Variant)
	if err != nil {
		return nil, fmt.Errorf("server: themes: %w", err)
	}
	s.themes = selector

	s.sessions = session.NewStore(
		session.WithTTL(cfg.Session.TTL),
		session.WithFormFactory(s.newForm),
		session.WithGridFactory(func() *grid.Grid {
			return grid.New(grid.WithItemsPerPage(cfg.Grid.ItemsPerPage))
		}),
		session.WithGridSource(s.source),
	)

	// The records endpoint serves the same data set without the load delay.
	records := mockdata.Generate(cfg.Grid.Count, cfg.Grid.Seed)
	s.records = gridapi.New(
		gridapi.WithRecords(records),
		gridapi.WithDefaultPageSize(cfg.Grid.ItemsPerPage),
		gridapi.WithMaxPageSize(cfg.Grid.MaxPageSize),
	)

	s.engine = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Sessions exposes the session store, e.g. to run its sweeper.
func (s *Server) Sessions() *session.Store { return s.sessions }

// Logger returns the server logger.
func (s *Server) Logger() *log.Logger { return s.logger }

func (s *Server) newForm(name string) (*form.Engine, error) {
	return showcase.NewForm(s.defs, name,
		form.WithSubmit(s.submit),
		form.WithSubmitErrorFallback(s.cfg.Form.FallbackMessage),
	)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(s.logger), gin.Recovery())
	if len(s.cfg.Server.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.Server.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: true,
		}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		s.logger.Printf("trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "route not found")
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
	})
	r.StaticFS(themes.AssetPrefix, http.FS(html.AssetsFS()))

	recordsPath := gridapi.MountPath("", func(o *gridapi.Options) { *o = s.records.Options() })
	r.GET(recordsPath, gin.WrapH(s.records.Handler()))
	r.HEAD(recordsPath, gin.WrapH(s.records.Handler()))

	pages := r.Group("/", s.workspace())
	pages.GET("", s.formPage)
	pages.GET("widgets/form", s.formPage)
	pages.POST("widgets/form/submit", s.formSubmit)
	pages.POST("widgets/form/reset", s.formReset)
	pages.GET("widgets/grid", s.gridPage)
	pages.POST("widgets/grid/filter", s.gridFilter)
	pages.POST("widgets/grid/reset-filters", s.gridResetFilters)
	pages.POST("widgets/grid/sort", s.gridSort)
	pages.POST("widgets/grid/page", s.gridPageChange)
	pages.POST("widgets/grid/size", s.gridPageSize)
	pages.GET("widgets/grid/export.pdf", s.gridExport)

	api := r.Group("/api", s.workspace())
	api.GET("/forms", s.apiForms)
	api.GET("/form/:name", s.apiFormState)
	api.PUT("/form/:name/fields/:field", s.apiSetFieldValue)
	api.PUT("/form/:name/fields/:field/error", s.apiSetFieldError)
	api.POST("/form/:name/fields/:field/touch", s.apiTouchField)
	api.POST("/form/:name/fields/:field/blur", s.apiBlurField)
	api.POST("/form/:name/fields/:field/validate", s.apiValidateField)
	api.POST("/form/:name/submit", s.apiSubmit)
	api.POST("/form/:name/reset", s.apiReset)
	api.GET("/grid", s.apiGrid)
	api.PATCH("/grid/filter", s.apiGridFilter)
	api.DELETE("/grid/filter", s.apiGridResetFilters)
	api.PUT("/grid/sort", s.apiGridSort)
	api.DELETE("/grid/sort", s.apiGridClearSort)
	api.POST("/grid/sort/:key/toggle", s.apiGridToggleSort)
	api.PUT("/grid/page", s.apiGridPage)
	api.PUT("/grid/page-size", s.apiGridPageSize)

	return r
}

func defaultRenderers() (*render.Registry, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(htmlRenderer, jsonrenderer.New(), pdf.New())
}
