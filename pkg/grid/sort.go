package grid

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names a sortable record field.
type SortKey string

const (
	SortID         SortKey = "id"
	SortName       SortKey = "name"
	SortEmail      SortKey = "email"
	SortDepartment SortKey = "department"
	SortSalary     SortKey = "salary"
	SortStartDate  SortKey = "startDate"
	SortStatus     SortKey = "status"
)

// SortKeys lists the sortable columns in display order.
var SortKeys = []SortKey{SortID, SortName, SortEmail, SortDepartment, SortSalary, SortStartDate, SortStatus}

// ParseSortKey resolves a column name, accepting snake_case aliases.
func ParseSortKey(raw string) (SortKey, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	for _, key := range SortKeys {
		if strings.ToLower(string(key)) == normalized {
			return key, true
		}
	}
	return "", false
}

// Direction is the sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" in any case; blank means ascending.
func ParseDirection(raw string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "asc", "ascending":
		return Asc, true
	case "desc", "descending":
		return Desc, true
	}
	return "", false
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortConfig selects a column and direction. A blank Key means no sort, which
// keeps the filtered order.
type SortConfig struct {
	Key       SortKey   `json:"key"`
	Direction Direction `json:"direction"`
}

// Active reports whether the config orders anything.
func (c SortConfig) Active() bool { return c.Key != "" }

func (c SortConfig) String() string {
	if !c.Active() {
		return "none"
	}
	return fmt.Sprintf("%s %s", c.Key, c.Direction)
}

// sortValue returns the comparable payload of item for key: a string for text
// columns, an int for numeric columns, nil for unknown keys.
func sortValue(item DataItem, key SortKey) any {
	switch key {
	case SortID:
		return item.ID
	case SortName:
		return item.Name
	case SortEmail:
		return item.Email
	case SortDepartment:
		return item.Department
	case SortSalary:
		return item.Salary
	case SortStartDate:
		return item.StartDate
	case SortStatus:
		return string(item.Status)
	}
	return nil
}

type comparer struct {
	collator *collate.Collator
}

// compare orders strings by English collation and ints numerically. Mixed or
// unknown payloads compare equal.
func (c comparer) compare(a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return c.collator.CompareString(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return av - bv
		}
	}
	return 0
}

// sortItems stably orders items in place.
func sortItems(items []DataItem, cfg SortConfig) {
	if !cfg.Active() {
		return
	}
	// Collators keep internal buffers and are not safe for concurrent use.
	cmp := comparer{collator: collate.New(language.English)}
	sign := 1
	if cfg.Direction == Desc {
		sign = -1
	}
	sort.SliceStable(items, func(i, j int) bool {
		return sign*cmp.compare(sortValue(items[i], cfg.Key), sortValue(items[j], cfg.Key)) < 0
	})
}
