package grid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Bound is an optional inclusive salary limit. The zero Bound is unset and
// filters nothing, so a legitimate zero salary limit stays expressible.
type Bound struct {
	Value int
	Set   bool
}

// BoundOf returns a set bound.
func BoundOf(v int) Bound { return Bound{Value: v, Set: true} }

// Unbounded returns an unset bound.
func Unbounded() Bound { return Bound{} }

func (b Bound) String() string {
	if !b.Set {
		return "none"
	}
	return fmt.Sprintf("%d", b.Value)
}

// MarshalJSON encodes an unset bound as null.
func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.Set {
		return []byte("null"), nil
	}
	return json.Marshal(b.Value)
}

// UnmarshalJSON decodes null as unset and a number as a set bound.
func (b *Bound) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*b = Bound{}
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("grid: salary bound: %w", err)
	}
	*b = BoundOf(v)
	return nil
}

// FilterConfig is the full predicate set. Empty strings and unset bounds
// disable the corresponding predicate.
type FilterConfig struct {
	Search     string `json:"search"`
	Department string `json:"department"`
	Status     Status `json:"status"`
	MinSalary  Bound  `json:"minSalary"`
	MaxSalary  Bound  `json:"maxSalary"`
}

// DefaultFilter is the "no filter" configuration.
func DefaultFilter() FilterConfig { return FilterConfig{} }

// IsZero reports whether no predicate is active.
func (f FilterConfig) IsZero() bool { return f == FilterConfig{} }

// Match reports whether item satisfies every active predicate.
func (f FilterConfig) Match(item DataItem) bool {
	return f.matchSearch(item) &&
		f.matchDepartment(item) &&
		f.matchStatus(item) &&
		f.matchMin(item) &&
		f.matchMax(item)
}

func (f FilterConfig) matchSearch(item DataItem) bool {
	needle := strings.ToLower(f.Search)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Email), needle) ||
		strings.Contains(strings.ToLower(item.Department), needle)
}

func (f FilterConfig) matchDepartment(item DataItem) bool {
	return f.Department == "" || item.Department == f.Department
}

func (f FilterConfig) matchStatus(item DataItem) bool {
	return f.Status == "" || item.Status == f.Status
}

func (f FilterConfig) matchMin(item DataItem) bool {
	return !f.MinSalary.Set || item.Salary >= f.MinSalary.Value
}

func (f FilterConfig) matchMax(item DataItem) bool {
	return !f.MaxSalary.Set || item.Salary <= f.MaxSalary.Value
}

// FilterUpdate is a partial filter change. Nil fields keep the current
// value; a non-nil bound pointing at an unset Bound clears that limit.
type FilterUpdate struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *Status `json:"status,omitempty"`
	MinSalary  *Bound  `json:"minSalary,omitempty"`
	MaxSalary  *Bound  `json:"maxSalary,omitempty"`
}

// Merge applies the update on top of f.
func (u FilterUpdate) Merge(f FilterConfig) FilterConfig {
	if u.Search != nil {
		f.Search = *u.Search
	}
	if u.Department != nil {
		f.Department = *u.Department
	}
	if u.Status != nil {
		f.Status = *u.Status
	}
	if u.MinSalary != nil {
		f.MinSalary = *u.MinSalary
	}
	if u.MaxSalary != nil {
		f.MaxSalary = *u.MaxSalary
	}
	return f
}

// UnmarshalJSON keeps explicit nulls for salary bounds, so {"minSalary": null}
// clears the lower limit instead of leaving it untouched.
func (u *FilterUpdate) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("grid: filter update: %w", err)
	}
	var out FilterUpdate
	for key, value := range raw {
		var err error
		switch key {
		case "search":
			out.Search = new(string)
			err = json.Unmarshal(value, out.Search)
		case "department":
			out.Department = new(string)
			err = json.Unmarshal(value, out.Department)
		case "status":
			var s string
			if err = json.Unmarshal(value, &s); err == nil {
				status, ok := ParseStatus(s)
				if !ok {
					return fmt.Errorf("grid: filter update: unknown status %q", s)
				}
				out.Status = &status
			}
		case "minSalary":
			out.MinSalary = new(Bound)
			err = out.MinSalary.UnmarshalJSON(value)
		case "maxSalary":
			out.MaxSalary = new(Bound)
			err = out.MaxSalary.UnmarshalJSON(value)
		default:
			return fmt.Errorf("grid: filter update: unknown field %q", key)
		}
		if err != nil {
			return fmt.Errorf("grid: filter update %s: %w", key, err)
		}
	}
	*u = out
	return nil
}
