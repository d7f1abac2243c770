package grid_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/grid/mockdata"
)

func TestGrid_ActiveBySalaryDescFirstPage(t *testing.T) {
	items := mockdata.Generate(100, 2024)
	g := grid.New(grid.WithItems(items), grid.WithItemsPerPage(20))

	g.SetPage(3)
	g.SetFilter(grid.FilterUpdate{Status: grid.StatusPtr(grid.StatusActive)})
	if got := g.Snapshot().Page; got != 1 {
		t.Fatalf("filter change must reset page to 1, got %d", got)
	}
	g.SetSort(grid.SortConfig{Key: grid.SortSalary, Direction: grid.Desc})

	snap := g.Snapshot()
	if snap.Page != 1 {
		t.Fatalf("expected page 1, got %d", snap.Page)
	}
	if len(snap.Items) > 20 {
		t.Fatalf("page holds %d items, want at most 20", len(snap.Items))
	}

	var active []int
	for _, item := range items {
		if item.Status == grid.StatusActive {
			active = append(active, item.Salary)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(active)))
	if len(active) > 20 {
		active = active[:20]
	}

	got := make([]int, len(snap.Items))
	for i, item := range snap.Items {
		if item.Status != grid.StatusActive {
			t.Fatalf("non-active record on page: %#v", item)
		}
		got[i] = item.Salary
	}
	if diff := cmp.Diff(active, got); diff != "" {
		t.Fatalf("salaries mismatch (-want +got):\n%s", diff)
	}
}

func TestGrid_SetPageClamps(t *testing.T) {
	g := grid.New(grid.WithItems(mockdata.Generate(45, 1)), grid.WithItemsPerPage(10))
	if got := g.SetPage(99); got != 5 {
		t.Fatalf("expected clamp to last page 5, got %d", got)
	}
	if got := g.SetPage(-2); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}

	snap := func() grid.Snapshot { g.SetPage(5); return g.Snapshot() }()
	if snap.RangeStart != 41 || snap.RangeEnd != 45 || len(snap.Items) != 5 {
		t.Fatalf("unexpected last page: start=%d end=%d len=%d", snap.RangeStart, snap.RangeEnd, len(snap.Items))
	}
	if snap.HasNext() || !snap.HasPrev() {
		t.Fatalf("unexpected navigation flags on last page")
	}
}

func TestGrid_EmptyResult(t *testing.T) {
	g := grid.New(grid.WithItems(mockdata.Generate(10, 1)))
	search := "no such person"
	g.SetFilter(grid.FilterUpdate{Search: &search})

	snap := g.Snapshot()
	if snap.TotalPages != 0 || snap.Page != 1 || len(snap.Items) != 0 {
		t.Fatalf("unexpected empty snapshot: %#v", snap)
	}
	if snap.RangeStart != 0 || snap.RangeEnd != 0 {
		t.Fatalf("empty range should be zero, got %d-%d", snap.RangeStart, snap.RangeEnd)
	}
}

func TestGrid_ToggleSort(t *testing.T) {
	g := grid.New()
	if cfg := g.ToggleSort(grid.SortName); cfg.Direction != grid.Asc {
		t.Fatalf("new key should start ascending, got %s", cfg)
	}
	if cfg := g.ToggleSort(grid.SortName); cfg.Direction != grid.Desc {
		t.Fatalf("same key should flip, got %s", cfg)
	}
	if cfg := g.ToggleSort(grid.SortSalary); cfg.Direction != grid.Asc {
		t.Fatalf("switching key should start ascending, got %s", cfg)
	}
	g.ClearSort()
	if g.Snapshot().Sort != nil {
		t.Fatalf("expected no sort after ClearSort")
	}
}

func TestGrid_SetItemsPerPage(t *testing.T) {
	g := grid.New(grid.WithItems(mockdata.Generate(30, 1)))
	g.SetPage(3)
	if err := g.SetItemsPerPage(0); !errors.Is(err, grid.ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if err := g.SetItemsPerPage(25); err != nil {
		t.Fatalf("set page size: %v", err)
	}
	snap := g.Snapshot()
	if snap.Page != 1 || snap.TotalPages != 2 || snap.ItemsPerPage != 25 {
		t.Fatalf("unexpected snapshot: page=%d total=%d size=%d", snap.Page, snap.TotalPages, snap.ItemsPerPage)
	}
}

func TestGrid_ResetFilters(t *testing.T) {
	g := grid.New(grid.WithItems(mockdata.Generate(30, 1)))
	dept := "Engineering"
	g.SetFilter(grid.FilterUpdate{Department: &dept})
	g.ResetFilters()
	snap := g.Snapshot()
	if !snap.Filter.IsZero() || snap.TotalItems != 30 {
		t.Fatalf("filters not reset: %#v total=%d", snap.Filter, snap.TotalItems)
	}
}

func TestGrid_Load(t *testing.T) {
	g := grid.New()
	if err := g.Load(context.Background(), mockdata.Source{Count: 12, Seed: 9}); err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := g.Snapshot()
	if snap.AllItems != 12 || snap.Loading {
		t.Fatalf("unexpected snapshot after load: all=%d loading=%v", snap.AllItems, snap.Loading)
	}

	boom := errors.New("backend down")
	err := g.Load(context.Background(), grid.SourceFunc(func(context.Context) ([]grid.DataItem, error) {
		return nil, boom
	}))
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	snap = g.Snapshot()
	if snap.Error != "backend down" || snap.AllItems != 12 {
		t.Fatalf("failed load should keep items and record error: %#v", snap)
	}

	if err := g.Load(context.Background(), nil); !errors.Is(err, grid.ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}
