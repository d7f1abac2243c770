// Package pdf exports grid pages as PDF tables.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-showcase/pkg/render"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithTitle sets the heading printed above the table.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if t := strings.TrimSpace(title); t != "" {
			r.title = t
		}
	}
}

// WithOrientation selects "P" (portrait) or "L" (landscape).
func WithOrientation(orientation string) Option {
	return func(r *Renderer) {
		switch strings.ToUpper(orientation) {
		case "P", "L":
			r.orientation = strings.ToUpper(orientation)
		}
	}
}

// Renderer implements render.Renderer for grid views.
type Renderer struct {
	title       string
	orientation string
	printer     *message.Printer
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a PDF renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		title:       "Employees",
		orientation: "L",
		printer:     message.NewPrinter(language.English),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string { return "pdf" }

func (r *Renderer) ContentType() string { return "application/pdf" }

type column struct {
	header string
	width  float64
	align  string
	value  func(row rowData) string
}

type rowData struct {
	id         int
	name       string
	email      string
	department string
	salary     string
	startDate  string
	status     string
}

// Render draws the visible grid page. Form views are rejected.
func (r *Renderer) Render(ctx context.Context, view render.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if view.Widget != render.WidgetGrid || view.Grid == nil {
		return nil, fmt.Errorf("%w: pdf export supports the grid widget only", render.ErrUnsupportedView)
	}
	gv := view.Grid

	pdf := gofpdf.New(r.orientation, "mm", "A4", "")
	pdf.SetTitle(r.title, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	columns := []column{
		{"ID", 14, "R", func(d rowData) string { return strconv.Itoa(d.id) }},
		{"Name", 48, "L", func(d rowData) string { return d.name }},
		{"Email", 72, "L", func(d rowData) string { return d.email }},
		{"Department", 36, "L", func(d rowData) string { return d.department }},
		{"Salary", 30, "R", func(d rowData) string { return d.salary }},
		{"Start date", 28, "L", func(d rowData) string { return d.startDate }},
		{"Status", 24, "L", func(d rowData) string { return d.status }},
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(226, 232, 240)
		for _, col := range columns {
			label := col.header
			if key := sortKeyFor(col.header); key != "" {
				for _, c := range gv.Columns {
					if c.Key == key && c.Active {
						label += " (" + c.Direction + ")"
					}
				}
			}
			pdf.CellFormat(col.width, 8, tr(label), "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(r.title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(r.summary(gv)))
	pdf.Ln(6)
	if filters := r.filterLine(gv.Filter); filters != "" {
		pdf.Cell(0, 6, tr(filters))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	header()
	for i, item := range gv.Rows {
		row := rowData{
			id:         item.ID,
			name:       item.Name,
			email:      item.Email,
			department: item.Department,
			salary:     r.printer.Sprintf("$%d", item.Salary),
			startDate:  item.StartDate,
			status:     string(item.Status),
		}
		fill := i%2 == 1
		pdf.SetFillColor(248, 250, 252)
		for _, col := range columns {
			pdf.CellFormat(col.width, 7, tr(col.value(row)), "1", 0, col.align, fill, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(gv.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 8, "No records match the current filters.", "", "", false)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf renderer: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) summary(gv *render.GridView) string {
	if gv.TotalItems == 0 {
		return "No results"
	}
	return r.printer.Sprintf("Page %d of %d, rows %d-%d of %d", gv.Page, gv.TotalPages, gv.RangeStart, gv.RangeEnd, gv.TotalItems)
}

func (r *Renderer) filterLine(f render.FilterView) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.Search))
	}
	if f.Department != "" {
		parts = append(parts, "department "+f.Department)
	}
	if f.Status != "" {
		parts = append(parts, "status "+f.Status)
	}
	if f.MinSalary != "" {
		parts = append(parts, "salary >= "+f.MinSalary)
	}
	if f.MaxSalary != "" {
		parts = append(parts, "salary <= "+f.MaxSalary)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filters: " + strings.Join(parts, ", ")
}

func sortKeyFor(header string) string {
	switch header {
	case "ID":
		return "id"
	case "Start date":
		return "startDate"
	default:
		return strings.ToLower(header)
	}
}
