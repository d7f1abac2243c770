package render

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/model"
)

func TestNewFormView_HidesErrorsOfUntouchedFields(t *testing.T) {
	def := model.FormDefinition{
		Name: "signup",
		Fields: []model.FieldDefinition{
			{Name: "email", Kind: model.FieldKindEmail, Rules: []model.ValidationRule{{Kind: model.RuleRequired}}},
			{Name: "plan", Kind: model.FieldKindSelect, Options: []model.Option{{Value: "free"}, {Value: "pro", Label: "Pro"}}},
			{Name: "terms", Kind: model.FieldKindCheckbox},
		},
	}
	state := form.NewState(def.FieldNames(), map[string]model.Value{
		"email": model.Text(""),
		"plan":  model.Text("pro"),
		"terms": model.Bool(true),
	})
	state = form.Reduce(state, form.SetError{Name: "email", Message: "Email is required"})
	state = form.Reduce(state, form.SetError{Name: "plan", Message: "hidden until touched"})
	state = form.Reduce(state, form.SetTouched{Name: "email"})

	view := NewFormView(def, state)
	if view.Title != "Signup" || view.SubmitLabel != "Submit" {
		t.Fatalf("unexpected defaults: title=%q submit=%q", view.Title, view.SubmitLabel)
	}
	if got := view.Fields[0]; got.Error != "Email is required" || !got.Required || got.ID != "signup-email" {
		t.Fatalf("unexpected email field: %#v", got)
	}
	if got := view.Fields[1].Error; got != "" {
		t.Fatalf("untouched field should not show its error, got %q", got)
	}
	wantOptions := []OptionView{{Value: "free", Label: "free"}, {Value: "pro", Label: "Pro", Selected: true}}
	if diff := cmp.Diff(wantOptions, view.Fields[1].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if !view.Fields[2].Checked {
		t.Fatalf("checkbox should be checked")
	}
}

func TestNewGridView_Metadata(t *testing.T) {
	items := make([]grid.DataItem, 0, 42)
	for i := 1; i <= 42; i++ {
		items = append(items, grid.DataItem{ID: i, Name: "n", Department: "Sales", Salary: i * 1000, Status: grid.StatusActive})
	}
	g := grid.New(grid.WithItems(items), grid.WithItemsPerPage(5))
	g.SetFilter(grid.FilterUpdate{MinSalary: &grid.Bound{Value: 3000, Set: true}})
	g.ToggleSort(grid.SortSalary)
	g.SetPage(4)

	view := NewGridView(g.Snapshot())
	if view.Page != 4 || view.TotalPages != 8 || view.PrevPage != 3 || view.NextPage != 5 {
		t.Fatalf("unexpected paging: %+v", view)
	}
	if diff := cmp.Diff([]int{2, 3, 4, 5, 6}, view.Pages); diff != "" {
		t.Fatalf("page window mismatch (-want +got):\n%s", diff)
	}
	if view.Filter.MinSalary != "3000" || view.Filter.MaxSalary != "" || !view.Filter.Active {
		t.Fatalf("unexpected filter view: %+v", view.Filter)
	}
	var salary ColumnView
	for _, col := range view.Columns {
		if col.Key == "salary" {
			salary = col
		}
	}
	if !salary.Active || salary.Direction != "asc" || salary.NextDirection != "desc" {
		t.Fatalf("unexpected salary column: %+v", salary)
	}
	if view.RangeStart != 16 || view.RangeEnd != 20 {
		t.Fatalf("unexpected range %d-%d", view.RangeStart, view.RangeEnd)
	}
}
