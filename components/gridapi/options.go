package gridapi

import (
	"net/http"

	"github.com/goliatone/go-showcase/pkg/grid"
)

const (
	defaultRoutePath = "/api/records"
	defaultPageSize  = grid.DefaultItemsPerPage
	defaultMaxSize   = 100
)

type GuardFunc func(r *http.Request) error

// Params holds the query parameter names the handler reads.
type Params struct {
	Search     string
	Department string
	Status     string
	MinSalary  string
	MaxSalary  string
	Sort       string
	Direction  string
	Page       string
	PageSize   string
}

// DefaultParams returns the standard parameter names.
func DefaultParams() Params {
	return Params{
		Search:     "q",
		Department: "department",
		Status:     "status",
		MinSalary:  "min_salary",
		MaxSalary:  "max_salary",
		Sort:       "sort",
		Direction:  "direction",
		Page:       "page",
		PageSize:   "page_size",
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	fill := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	fill(&p.Search, d.Search)
	fill(&p.Department, d.Department)
	fill(&p.Status, d.Status)
	fill(&p.MinSalary, d.MinSalary)
	fill(&p.MaxSalary, d.MaxSalary)
	fill(&p.Sort, d.Sort)
	fill(&p.Direction, d.Direction)
	fill(&p.Page, d.Page)
	fill(&p.PageSize, d.PageSize)
	return p
}

type Options struct {
	RoutePath       string
	Params          Params
	DefaultPageSize int
	MaxPageSize     int
	Guard           GuardFunc

	// Source supplies the working set per request. When nil, Records is used,
	// and when both are nil the default generated records are served.
	Source  grid.Source
	Records []grid.DataItem
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       defaultRoutePath,
		Params:          DefaultParams(),
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     defaultMaxSize,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	opts.Params = opts.Params.withDefaults()
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = defaultMaxSize
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = defaultPageSize
	}
	if opts.DefaultPageSize > opts.MaxPageSize {
		opts.DefaultPageSize = opts.MaxPageSize
	}
	if opts.Records != nil {
		opts.Records = append([]grid.DataItem{}, opts.Records...)
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

// WithParams overrides parameter names; blank fields keep their defaults.
func WithParams(params Params) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Params = params
	}
}

func WithDefaultPageSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultPageSize = size
	}
}

func WithMaxPageSize(size int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxPageSize = size
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithSource(src grid.Source) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Source = src
	}
}

func WithRecords(records []grid.DataItem) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		if records == nil {
			o.Records = nil
			return
		}
		o.Records = append([]grid.DataItem{}, records...)
	}
}

func clampPageSize(size int, opts Options) int {
	if size <= 0 {
		size = opts.DefaultPageSize
	}
	if opts.MaxPageSize > 0 && size > opts.MaxPageSize {
		return opts.MaxPageSize
	}
	return size
}
