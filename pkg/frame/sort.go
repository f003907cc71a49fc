package frame

import (
	"fmt"
	"sort"

	"github.com/tablekit/tablekit/pkg/series"
)

// SortKey names one sort criterion. Ascending unless Descending is set.
type SortKey struct {
	Name       string
	Descending bool
}

// Sort returns a new frame with rows reordered by the given keys, applied
// left to right. The sort is stable: rows equal under every key keep their
// original relative order. Nulls sort after non-null values in both
// directions. Every column is reordered by the same permutation, so row
// alignment is preserved.
func (f *Frame) Sort(keys ...SortKey) (*Frame, error) {
	if len(keys) == 0 {
		return f.Clone(), nil
	}
	cols := make([]series.Series, len(keys))
	for i, key := range keys {
		c, err := f.Column(key.Name)
		if err != nil {
			return nil, fmt.Errorf("sort by %q: %w", key.Name, err)
		}
		cols[i] = c
	}

	perm := make([]int, f.Height())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for i, c := range cols {
			if cmp := c.CompareRows(perm[a], perm[b], keys[i].Descending); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
	return f.take(perm)
}
