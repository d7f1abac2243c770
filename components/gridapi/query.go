package gridapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-showcase/pkg/grid"
)

// Query is a parsed records request.
type Query struct {
	Filter   grid.FilterConfig
	Sort     grid.SortConfig
	Page     int
	PageSize int
}

// ParseQuery reads a Query from values using the parameter names in opts.
// Unknown statuses, sort keys, directions, and non-numeric salary bounds are
// rejected with a 400 StatusError; page numbers are clamped later.
func ParseQuery(values url.Values, opts Options) (Query, error) {
	p := opts.Params.withDefaults()
	q := Query{
		Page:     parseInt(values.Get(p.Page)),
		PageSize: clampPageSize(parseInt(values.Get(p.PageSize)), opts),
	}

	q.Filter.Search = strings.TrimSpace(values.Get(p.Search))
	q.Filter.Department = strings.TrimSpace(values.Get(p.Department))

	status, ok := grid.ParseStatus(values.Get(p.Status))
	if !ok {
		return Query{}, badRequest("unknown %s %q", p.Status, values.Get(p.Status))
	}
	q.Filter.Status = status

	var err error
	if q.Filter.MinSalary, err = parseBound(values.Get(p.MinSalary), p.MinSalary); err != nil {
		return Query{}, err
	}
	if q.Filter.MaxSalary, err = parseBound(values.Get(p.MaxSalary), p.MaxSalary); err != nil {
		return Query{}, err
	}

	if raw := strings.TrimSpace(values.Get(p.Sort)); raw != "" {
		key, ok := grid.ParseSortKey(raw)
		if !ok {
			return Query{}, badRequest("unknown %s %q", p.Sort, raw)
		}
		dir, ok := grid.ParseDirection(values.Get(p.Direction))
		if !ok {
			return Query{}, badRequest("unknown %s %q", p.Direction, values.Get(p.Direction))
		}
		q.Sort = grid.SortConfig{Key: key, Direction: dir}
	}
	return q, nil
}

func parseBound(raw, name string) (grid.Bound, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return grid.Unbounded(), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return grid.Bound{}, badRequest("%s must be an integer", name)
	}
	return grid.BoundOf(v), nil
}

func badRequest(format string, args ...any) error {
	return StatusError{Code: http.StatusBadRequest, Err: fmt.Errorf(format, args...)}
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
