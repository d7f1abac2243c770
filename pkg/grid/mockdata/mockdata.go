// Package mockdata generates deterministic employee records for the grid
// widget and serves them behind a simulated load delay.
package mockdata

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/goliatone/go-showcase/pkg/grid"
)

const (
	MinSalary  = 35000
	MaxSalary  = 180000
	SalaryStep = 500

	FirstYear = 2015
	LastYear  = 2024

	// DefaultCount is the size of the demo working set.
	DefaultCount = 100
	// DefaultDelay is the simulated mount-time load latency.
	DefaultDelay = 500 * time.Millisecond
)

var (
	firstNames = []string{
		"Ada", "Grace", "Alan", "Linus", "Margaret", "Dennis", "Barbara", "Ken",
		"Frances", "Edsger", "Radia", "Donald", "Katherine", "John", "Hedy", "Tim",
		"Sophie", "Niklaus", "Joan", "Bjarne",
	}
	lastNames = []string{
		"Lovelace", "Hopper", "Turing", "Torvalds", "Hamilton", "Ritchie", "Liskov",
		"Thompson", "Allen", "Dijkstra", "Perlman", "Knuth", "Johnson", "McCarthy",
		"Lamarr", "Berners-Lee", "Wilson", "Wirth", "Clarke", "Stroustrup",
	}
	// Departments is the fixed department set records are drawn from.
	Departments = []string{"Engineering", "Marketing", "Sales", "HR", "Finance", "Operations"}
)

// Generate returns n records. The same seed always yields the same records.
func Generate(n int, seed uint64) []grid.DataItem {
	if n <= 0 {
		return []grid.DataItem{}
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	items := make([]grid.DataItem, n)
	steps := (MaxSalary-MinSalary)/SalaryStep + 1
	for i := range items {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		id := i + 1
		items[i] = grid.DataItem{
			ID:         id,
			Name:       first + " " + last,
			Email:      emailFor(first, last, id),
			Department: Departments[rng.IntN(len(Departments))],
			Salary:     MinSalary + rng.IntN(steps)*SalaryStep,
			StartDate:  startDate(rng),
			Status:     status(rng),
		}
	}
	return items
}

func emailFor(first, last string, id int) string {
	local := strings.ToLower(first + "." + strings.ReplaceAll(last, "-", ""))
	return fmt.Sprintf("%s%d@example.com", local, id)
}

func startDate(rng *rand.Rand) string {
	year := FirstYear + rng.IntN(LastYear-FirstYear+1)
	month := time.Month(1 + rng.IntN(12))
	day := 1 + rng.IntN(28)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
}

// status draws active 60%, inactive 20%, pending 20%.
func status(rng *rand.Rand) grid.Status {
	switch n := rng.IntN(10); {
	case n < 6:
		return grid.StatusActive
	case n < 8:
		return grid.StatusInactive
	default:
		return grid.StatusPending
	}
}

// Source implements grid.Source with generated records and an artificial
// delay.
type Source struct {
	Count int
	Seed  uint64
	Delay time.Duration
}

// Items waits for Delay, honouring ctx, then returns Count records.
func (s Source) Items(ctx context.Context) ([]grid.DataItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	count := s.Count
	if count <= 0 {
		count = DefaultCount
	}
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return Generate(count, s.Seed), nil
}

var _ grid.Source = Source{}
