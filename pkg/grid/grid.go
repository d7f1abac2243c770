package grid

import (
	"context"
	"fmt"
	"sync"
)

// DefaultItemsPerPage is the page size of a new Grid.
const DefaultItemsPerPage = 10

// Source supplies the working set on mount.
type Source interface {
	Items(ctx context.Context) ([]DataItem, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]DataItem, error)

// Items implements Source.
func (fn SourceFunc) Items(ctx context.Context) ([]DataItem, error) { return fn(ctx) }

// Option configures a Grid.
type Option func(*Grid)

// WithItemsPerPage sets the initial page size. Non-positive values are
// ignored.
func WithItemsPerPage(n int) Option {
	return func(g *Grid) {
		if n > 0 {
			g.perPage = n
		}
	}
}

// WithItems seeds the working set.
func WithItems(items []DataItem) Option {
	return func(g *Grid) {
		g.items = append([]DataItem(nil), items...)
	}
}

// WithFilter sets the initial filter.
func WithFilter(filter FilterConfig) Option {
	return func(g *Grid) {
		g.filter = filter
	}
}

// WithSort sets the initial sort.
func WithSort(cfg SortConfig) Option {
	return func(g *Grid) {
		g.sort = cfg
	}
}

// Grid holds the working set and the parameters the widget mutates. The
// filtered view is recomputed in full whenever items, filter, or sort change.
// Grid is safe for concurrent use.
type Grid struct {
	mu sync.RWMutex

	items    []DataItem
	filtered []DataItem
	filter   FilterConfig
	sort     SortConfig
	perPage  int
	page     int
	loading  bool
	loadErr  string
}

// New returns a grid with the default filter, no sort, and page 1.
func New(options ...Option) *Grid {
	g := &Grid{
		filter:  DefaultFilter(),
		perPage: DefaultItemsPerPage,
		page:    1,
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	g.recomputeLocked()
	return g
}

// SetItems replaces the working set and returns to page 1.
func (g *Grid) SetItems(items []DataItem) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = append([]DataItem(nil), items...)
	g.page = 1
	g.recomputeLocked()
}

// SetFilter merges update into the current filter and returns to page 1.
func (g *Grid) SetFilter(update FilterUpdate) FilterConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filter = update.Merge(g.filter)
	g.page = 1
	g.recomputeLocked()
	return g.filter
}

// ResetFilters restores the default filter and returns to page 1.
func (g *Grid) ResetFilters() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.filter = DefaultFilter()
	g.page = 1
	g.recomputeLocked()
}

// SetSort replaces the sort configuration. A blank direction means ascending.
// The current page is kept.
func (g *Grid) SetSort(cfg SortConfig) {
	if cfg.Active() && cfg.Direction == "" {
		cfg.Direction = Asc
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sort = cfg
	g.recomputeLocked()
}

// ClearSort removes ordering; the filtered order is the source order.
func (g *Grid) ClearSort() {
	g.SetSort(SortConfig{})
}

// ToggleSort is the column-header handler: the active key flips direction,
// any other key starts ascending.
func (g *Grid) ToggleSort(key SortKey) SortConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := SortConfig{Key: key, Direction: Asc}
	if g.sort.Key == key {
		next.Direction = g.sort.Direction.Flip()
	}
	g.sort = next
	g.recomputeLocked()
	return next
}

// SetItemsPerPage replaces the page size and returns to page 1.
func (g *Grid) SetItemsPerPage(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.perPage = n
	g.page = 1
	g.recomputeLocked()
	return nil
}

// SetPage navigates to page n, clamped into [1, max(1, TotalPages)]. It
// returns the page actually selected.
func (g *Grid) SetPage(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.page = clampPage(n, TotalPages(len(g.filtered), g.perPage))
	return g.page
}

// Load marks the grid loading, fetches the working set from src, and
// installs it. On failure the previous items stay and the error is kept for
// Snapshot.
func (g *Grid) Load(ctx context.Context, src Source) error {
	if src == nil {
		return ErrNoSource
	}
	g.mu.Lock()
	g.loading = true
	g.loadErr = ""
	g.mu.Unlock()

	items, err := src.Items(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.loading = false
	if err != nil {
		g.loadErr = err.Error()
		return fmt.Errorf("grid: load: %w", err)
	}
	g.items = append([]DataItem(nil), items...)
	g.page = 1
	g.recomputeLocked()
	return nil
}

// Filter returns the current filter.
func (g *Grid) Filter() FilterConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.filter
}

// Sort returns the current sort configuration.
func (g *Grid) Sort() SortConfig {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sort
}

// Filtered returns a copy of the full filtered and sorted view.
func (g *Grid) Filtered() []DataItem {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]DataItem(nil), g.filtered...)
}

// Snapshot is the visible page plus the metadata a view needs.
type Snapshot struct {
	Items        []DataItem   `json:"items"`
	Filter       FilterConfig `json:"filter"`
	Sort         *SortConfig  `json:"sort"`
	Page         int          `json:"page"`
	ItemsPerPage int          `json:"itemsPerPage"`
	TotalPages   int          `json:"totalPages"`
	TotalItems   int          `json:"totalItems"`
	AllItems     int          `json:"allItems"`
	RangeStart   int          `json:"rangeStart"`
	RangeEnd     int          `json:"rangeEnd"`
	Departments  []string     `json:"departments"`
	Loading      bool         `json:"loading"`
	Error        string       `json:"error,omitempty"`
}

// HasPrev reports whether a previous page exists.
func (s Snapshot) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether a following page exists.
func (s Snapshot) HasNext() bool { return s.Page < s.TotalPages }

// Snapshot returns the current page and metadata.
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	visible := Paginate(g.filtered, g.page, g.perPage)
	snap := Snapshot{
		Items:        append([]DataItem(nil), visible...),
		Filter:       g.filter,
		Page:         g.page,
		ItemsPerPage: g.perPage,
		TotalPages:   TotalPages(len(g.filtered), g.perPage),
		TotalItems:   len(g.filtered),
		AllItems:     len(g.items),
		Departments:  Departments(g.items),
		Loading:      g.loading,
		Error:        g.loadErr,
	}
	if snap.Items == nil {
		snap.Items = []DataItem{}
	}
	if len(visible) > 0 {
		snap.RangeStart = (g.page-1)*g.perPage + 1
		snap.RangeEnd = snap.RangeStart + len(visible) - 1
	}
	if g.sort.Active() {
		cfg := g.sort
		snap.Sort = &cfg
	}
	return snap
}

func (g *Grid) recomputeLocked() {
	g.filtered = ApplyFiltersAndSort(g.items, g.filter, g.sort)
	g.page = clampPage(g.page, TotalPages(len(g.filtered), g.perPage))
}

func clampPage(n, total int) int {
	if total < 1 {
		total = 1
	}
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
