package gridapi

import (
	"sync"

	"github.com/goliatone/go-showcase/pkg/grid"
	"github.com/goliatone/go-showcase/pkg/grid/mockdata"
)

// DefaultSeed seeds the records served when no source is configured.
const DefaultSeed uint64 = 1

var (
	defaultOnce    sync.Once
	defaultRecords []grid.DataItem
)

// DefaultRecords returns a copy of the generated demo working set.
func DefaultRecords() []grid.DataItem {
	defaultOnce.Do(func() {
		defaultRecords = mockdata.Generate(mockdata.DefaultCount, DefaultSeed)
	})
	return append([]grid.DataItem{}, defaultRecords...)
}
