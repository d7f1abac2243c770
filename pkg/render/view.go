package render

import (
	"slices"
	"strconv"

	"github.com/goliatone/go-showcase/pkg/form"
	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/model"
)

// Widget identifies the widget a page shows.
type Widget string

const (
	WidgetForm Widget = "form"
	WidgetGrid Widget = "grid"
)

// View is everything a renderer needs for one page.
type View struct {
	Title  string    `json:"title"`
	Widget Widget    `json:"widget"`
	Nav    []NavItem `json:"nav,omitempty"`
	Theme  ThemeView `json:"theme"`
	Form   *FormView `json:"form,omitempty"`
	Grid   *GridView `json:"grid,omitempty"`
	Flash  string    `json:"flash,omitempty"`
}

// NavItem is a sidebar or switcher entry.
type NavItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

// ThemeView carries the resolved theme into templates.
type ThemeView struct {
	Name        string    `json:"name"`
	Variant     string    `json:"variant"`
	CSSVars     []CSSVar  `json:"cssVars,omitempty"`
	Stylesheets []string  `json:"stylesheets,omitempty"`
	Variants    []NavItem `json:"variants,omitempty"`
}

// CSSVar is a single custom property, e.g. {"--color-primary", "#2563eb"}.
type CSSVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FormView is the render-ready projection of a form definition and state.
type FormView struct {
	Name         string      `json:"name"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	SubmitLabel  string      `json:"submitLabel"`
	Action       string      `json:"action,omitempty"`
	ResetAction  string      `json:"resetAction,omitempty"`
	Fields       []FieldView `json:"fields"`
	IsSubmitting bool        `json:"isSubmitting"`
	IsSubmitted  bool        `json:"isSubmitted"`
	SubmitError  string      `json:"submitError,omitempty"`
	Forms        []NavItem   `json:"forms,omitempty"`
}

// FieldView is one input. Error is only populated once the field has been
// touched so pristine inputs do not shout at the user.
type FieldView struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder,omitempty"`
	Help        string       `json:"help,omitempty"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []OptionView `json:"options,omitempty"`
	Required    bool         `json:"required"`
	Touched     bool         `json:"touched"`
	Error       string       `json:"error,omitempty"`
}

// OptionView is a select choice.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// NewFormView projects def and state. Fields follow definition order.
func NewFormView(def model.FormDefinition, state form.State) FormView {
	view := FormView{
		Name:         def.Name,
		Title:        def.Title,
		Description:  def.Description,
		SubmitLabel:  def.SubmitLabel,
		Fields:       make([]FieldView, 0, len(def.Fields)),
		IsSubmitting: state.IsSubmitting,
		IsSubmitted:  state.IsSubmitted,
		SubmitError:  state.SubmitError,
	}
	if view.Title == "" {
		view.Title = model.DefaultLabeler(def.Name)
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = "Submit"
	}

	for _, field := range def.Fields {
		fs, ok := state.Field(field.Name)
		if !ok {
			fs = form.FieldState{Name: field.Name, Value: field.InitialValue()}
		}
		fv := FieldView{
			Name:        field.Name,
			ID:          def.Name + "-" + field.Name,
			Kind:        string(field.Kind),
			Label:       field.DisplayLabel(),
			Placeholder: field.Placeholder,
			Help:        field.Help,
			Value:       fs.Value.Text(),
			Checked:     fs.Value.Bool(),
			Required:    field.Required(),
			Touched:     fs.Touched,
		}
		if fs.Touched {
			fv.Error = fs.Error
		}
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.DisplayLabel(),
				Selected: opt.Value == fv.Value,
			})
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

// DefaultPageSizes are the page-size choices offered by grid views.
var DefaultPageSizes = []int{5, 10, 20, 50}

// GridView is the render-ready projection of a grid snapshot.
type GridView struct {
	Columns      []ColumnView    `json:"columns"`
	Rows         []grid.DataItem `json:"rows"`
	Filter       FilterView      `json:"filter"`
	Departments  []string        `json:"departments"`
	Statuses     []string        `json:"statuses"`
	Page         int             `json:"page"`
	TotalPages   int             `json:"totalPages"`
	ItemsPerPage int             `json:"itemsPerPage"`
	PageSizes    []int           `json:"pageSizes"`
	Pages        []int           `json:"pages"`
	PrevPage     int             `json:"prevPage"`
	NextPage     int             `json:"nextPage"`
	HasPrev      bool            `json:"hasPrev"`
	HasNext      bool            `json:"hasNext"`
	TotalItems   int             `json:"totalItems"`
	AllItems     int             `json:"allItems"`
	RangeStart   int             `json:"rangeStart"`
	RangeEnd     int             `json:"rangeEnd"`
	Loading      bool            `json:"loading"`
	Error        string          `json:"error,omitempty"`
}

// ColumnView is a table header. NextDirection is what clicking the header
// would select.
type ColumnView struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	Active        bool   `json:"active"`
	Direction     string `json:"direction,omitempty"`
	NextDirection string `json:"nextDirection"`
}

// FilterView holds filter inputs as strings; unset bounds are blank.
type FilterView struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Status     string `json:"status"`
	MinSalary  string `json:"minSalary"`
	MaxSalary  string `json:"maxSalary"`
	Active     bool   `json:"active"`
}

var columnLabels = map[grid.SortKey]string{
	grid.SortID:         "ID",
	grid.SortName:       "Name",
	grid.SortEmail:      "Email",
	grid.SortDepartment: "Department",
	grid.SortSalary:     "Salary",
	grid.SortStartDate:  "Start date",
	grid.SortStatus:     "Status",
}

// pageWindow is how many page links surround the current page.
const pageWindow = 2

// NewGridView projects snap.
func NewGridView(snap grid.Snapshot) GridView {
	view := GridView{
		Rows:         snap.Items,
		Departments:  snap.Departments,
		Page:         snap.Page,
		TotalPages:   snap.TotalPages,
		ItemsPerPage: snap.ItemsPerPage,
		PageSizes:    pageSizes(snap.ItemsPerPage),
		HasPrev:      snap.HasPrev(),
		HasNext:      snap.HasNext(),
		TotalItems:   snap.TotalItems,
		AllItems:     snap.AllItems,
		RangeStart:   snap.RangeStart,
		RangeEnd:     snap.RangeEnd,
		Loading:      snap.Loading,
		Error:        snap.Error,
		Filter: FilterView{
			Search:     snap.Filter.Search,
			Department: snap.Filter.Department,
			Status:     string(snap.Filter.Status),
			MinSalary:  boundText(snap.Filter.MinSalary),
			MaxSalary:  boundText(snap.Filter.MaxSalary),
			Active:     !snap.Filter.IsZero(),
		},
	}
	if view.Rows == nil {
		view.Rows = []grid.DataItem{}
	}
	for _, status := range grid.Statuses {
		view.Statuses = append(view.Statuses, string(status))
	}
	if view.HasPrev {
		view.PrevPage = snap.Page - 1
	}
	if view.HasNext {
		view.NextPage = snap.Page + 1
	}
	view.Pages = pageNumbers(snap.Page, snap.TotalPages)

	for _, key := range grid.SortKeys {
		col := ColumnView{Key: string(key), Label: columnLabels[key], NextDirection: string(grid.Asc)}
		if snap.Sort != nil && snap.Sort.Key == key {
			col.Active = true
			col.Direction = string(snap.Sort.Direction)
			col.NextDirection = string(snap.Sort.Direction.Flip())
		}
		view.Columns = append(view.Columns, col)
	}
	return view
}

func boundText(b grid.Bound) string {
	if !b.Set {
		return ""
	}
	return strconv.Itoa(b.Value)
}

func pageSizes(current int) []int {
	sizes := append([]int(nil), DefaultPageSizes...)
	for _, size := range sizes {
		if size == current {
			return sizes
		}
	}
	if current > 0 {
		sizes = append(sizes, current)
		slices.Sort(sizes)
	}
	return sizes
}

func pageNumbers(current, total int) []int {
	if total <= 0 {
		return []int{}
	}
	start := max(1, current-pageWindow)
	end := min(total, current+pageWindow)
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
