package pdf

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/render"
)

func TestRender_GridProducesPDF(t *testing.T) {
	items := make([]grid.DataItem, 0, 60)
	for i := 1; i <= 60; i++ {
		items = append(items, grid.DataItem{ID: i, Name: "Émile Borel", Email: "emile@example.com", Department: "Finance", Salary: 50000 + i, StartDate: "2020-02-02", Status: grid.StatusActive})
	}
	g := grid.New(grid.WithItems(items), grid.WithItemsPerPage(50))
	g.ToggleSort(grid.SortSalary)
	gv := render.NewGridView(g.Snapshot())

	r := New(WithTitle("Export"), WithOrientation("p"))
	if r.ContentType() != "application/pdf" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
	out, err := r.Render(context.Background(), render.View{Widget: render.WidgetGrid, Grid: &gv})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
}

func TestRender_EmptyGrid(t *testing.T) {
	gv := render.NewGridView(grid.New().Snapshot())
	if _, err := New().Render(context.Background(), render.View{Widget: render.WidgetGrid, Grid: &gv}); err != nil {
		t.Fatalf("render empty grid: %v", err)
	}
}

func TestRender_RejectsForm(t *testing.T) {
	fv := render.FormView{Name: "contact"}
	_, err := New().Render(context.Background(), render.View{Widget: render.WidgetForm, Form: &fv})
	if !errors.Is(err, render.ErrUnsupportedView) {
		t.Fatalf("expected ErrUnsupportedView, got %v", err)
	}
}

func TestFilterLine(t *testing.T) {
	got := New().filterLine(render.FilterView{Status: "active", MinSalary: "1000"})
	if got != "Filters: status active, salary >= 1000" {
		t.Fatalf("unexpected filter line %q", got)
	}
}
