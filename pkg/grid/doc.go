// Package grid implements the data grid pipeline: filter, sort, and paginate
// an in-memory record set. The pure functions (ApplyFiltersAndSort, Paginate,
// TotalPages) carry the semantics; Grid wraps them with the page, filter, and
// sort parameters a widget mutates, recomputing the filtered view on every
// change.
//
//	g := grid.New(grid.WithItemsPerPage(20))
//	g.SetItems(mockdata.Generate(100, 1))
//	g.SetFilter(grid.FilterUpdate{Status: grid.StatusPtr(grid.StatusActive)})
//	g.SetSort(grid.SortConfig{Key: grid.SortSalary, Direction: grid.Desc})
//	page := g.Snapshot()
package grid
