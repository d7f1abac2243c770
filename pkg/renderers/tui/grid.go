package tui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-showcase/pkg/grid"
)

// PrintGrid writes the visible page of snap as an aligned table followed by a
// paging summary.
func PrintGrid(w io.Writer, snap grid.Snapshot) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	sortKey, sortDir := grid.SortKey(""), grid.Direction("")
	if snap.Sort != nil {
		sortKey, sortDir = snap.Sort.Key, snap.Sort.Direction
	}
	headers := []struct {
		key   grid.SortKey
		label string
	}{
		{grid.SortID, "ID"}, {grid.SortName, "NAME"}, {grid.SortEmail, "EMAIL"},
		{grid.SortDepartment, "DEPARTMENT"}, {grid.SortSalary, "SALARY"},
		{grid.SortStartDate, "START DATE"}, {grid.SortStatus, "STATUS"},
	}
	for i, h := range headers {
		label := h.label
		if h.key == sortKey {
			if sortDir == grid.Desc {
				label += " v"
			} else {
				label += " ^"
			}
		}
		sep := "\t"
		if i == len(headers)-1 {
			sep = "\t\n"
		}
		fmt.Fprint(tw, label, sep)
	}
	for _, item := range snap.Items {
		p.Fprintf(tw, "%d\t%s\t%s\t%s\t$%d\t%s\t%s\t\n",
			item.ID, item.Name, item.Email, item.Department, item.Salary, item.StartDate, item.Status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if snap.TotalItems == 0 {
		_, err := fmt.Fprintln(w, "No records match the current filters.")
		return err
	}
	_, err := p.Fprintf(w, "Showing %d-%d of %d (page %d of %d, %d records total)\n",
		snap.RangeStart, snap.RangeEnd, snap.TotalItems, snap.Page, snap.TotalPages, snap.AllItems)
	return err
}
