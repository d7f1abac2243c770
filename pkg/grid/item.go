package grid

import "strings"

// Status is the employment status of a record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Statuses lists the valid statuses in display order.
var Statuses = []Status{StatusActive, StatusInactive, StatusPending}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}

// ParseStatus accepts a status name in any case. The empty string parses to
// the empty status, meaning "any".
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" {
		return "", true
	}
	return s, s.Valid()
}

// StatusPtr is a helper for building FilterUpdate literals.
func StatusPtr(s Status) *Status { return &s }

// DataItem is one record of the grid working set. Records are never mutated
// after generation; the pipeline only filters and reorders them.
type DataItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Salary     int    `json:"salary"`
	StartDate  string `json:"startDate"`
	Status     Status `json:"status"`
}
