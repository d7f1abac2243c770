package gridapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-showcase/pkg/grid"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// Meta describes the page returned alongside the records.
type Meta struct {
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
	TotalItems int               `json:"totalItems"`
	AllItems   int               `json:"allItems"`
	Filter     grid.FilterConfig `json:"filter"`
	Sort       *grid.SortConfig  `json:"sort,omitempty"`
}

// Response is the JSON body written by the handler.
type Response struct {
	Data []grid.DataItem `json:"data"`
	Meta Meta            `json:"meta"`
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		query, err := ParseQuery(r.URL.Query(), opts)
		if err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}

		records, err := loadRecords(r.Context(), opts)
		if err != nil {
			writeError(w, err, http.StatusInternalServerError)
			return
		}

		resp := Build(records, query)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(resp)
	})
}

// Build runs the grid pipeline over records for q. Out-of-range pages are
// clamped to [1, max(1, totalPages)].
func Build(records []grid.DataItem, q Query) Response {
	size := q.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	filtered := grid.ApplyFiltersAndSort(records, q.Filter, q.Sort)
	total := grid.TotalPages(len(filtered), size)
	page := q.Page
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	meta := Meta{
		Page:       page,
		PageSize:   size,
		TotalPages: total,
		TotalItems: len(filtered),
		AllItems:   len(records),
		Filter:     q.Filter,
	}
	if q.Sort.Active() {
		sortCfg := q.Sort
		meta.Sort = &sortCfg
	}
	return Response{Data: grid.Paginate(filtered, page, size), Meta: meta}
}

func loadRecords(ctx context.Context, opts Options) ([]grid.DataItem, error) {
	switch {
	case opts.Source != nil:
		return opts.Source.Items(ctx)
	case opts.Records != nil:
		return opts.Records, nil
	default:
		return DefaultRecords(), nil
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
	}
	msg := http.StatusText(code)
	if code < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, code)
}
