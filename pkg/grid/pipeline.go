package grid

import "sort"

// ApplyFiltersAndSort returns the records of items matching filter, ordered by
// cfg. The input slice is never modified.
func ApplyFiltersAndSort(items []DataItem, filter FilterConfig, cfg SortConfig) []DataItem {
	out := make([]DataItem, 0, len(items))
	for _, item := range items {
		if filter.Match(item) {
			out = append(out, item)
		}
	}
	sortItems(out, cfg)
	return out
}

// Paginate returns the window [(page-1)*perPage, page*perPage) of items,
// bounded by the slice length. Pages outside the range yield an empty slice;
// callers keep page within [1, TotalPages].
func Paginate(items []DataItem, page, perPage int) []DataItem {
	if page < 1 || perPage < 1 {
		return []DataItem{}
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []DataItem{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// TotalPages is ceil(n/perPage). An empty set has zero pages.
func TotalPages(n, perPage int) int {
	if n <= 0 || perPage <= 0 {
		return 0
	}
	return (n + perPage - 1) / perPage
}

// Departments returns the distinct departments of items, sorted.
func Departments(items []DataItem) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 8)
	for _, item := range items {
		if item.Department == "" {
			continue
		}
		if _, ok := seen[item.Department]; ok {
			continue
		}
		seen[item.Department] = struct{}{}
		out = append(out, item.Department)
	}
	sort.Strings(out)
	return out
}
