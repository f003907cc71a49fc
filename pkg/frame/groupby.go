package frame

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/series"
)

// GroupBy partitions a frame's rows by the values of one or more key
// columns. Groups are kept in the order their keys first appear, so every
// aggregation over the same input produces the same output ordering. A null
// key cell is a distinguished value: rows with matching nulls group
// together rather than being dropped.
type GroupBy struct {
	frame  *Frame
	keys   []string
	groups []*rowGroup
}

// rowGroup is one partition: the key values that define it and the ordered
// row indices that carry them.
type rowGroup struct {
	key  []series.Value
	raw  []byte
	rows []int
}

// GroupBy partitions the frame by the named key columns.
func (f *Frame) GroupBy(keys ...string) (*GroupBy, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("group by: %w: no key columns", ErrColumnNotFound)
	}
	keyCols := make([]series.Series, len(keys))
	for i, name := range keys {
		c, err := f.Column(name)
		if err != nil {
			return nil, fmt.Errorf("group by %q: %w", name, err)
		}
		keyCols[i] = c
	}

	g := &GroupBy{frame: f, keys: keys}

	// Rows hash to buckets, and bucket membership is confirmed against the
	// serialized key bytes so that a hash collision cannot merge two
	// distinct groups.
	buckets := make(map[uint64][]*rowGroup)
	digest := xxhash.New()
	var raw []byte

	for row := 0; row < f.Height(); row++ {
		digest.Reset()
		raw = raw[:0]
		key := make([]series.Value, len(keyCols))
		for i, c := range keyCols {
			v, err := c.Value(row)
			if err != nil {
				return nil, err
			}
			key[i] = v
			v.AppendHash(digest)
			raw = v.AppendKey(raw)
		}

		sum := digest.Sum64()
		var grp *rowGroup
		for _, candidate := range buckets[sum] {
			if string(candidate.raw) == string(raw) {
				grp = candidate
				break
			}
		}
		if grp == nil {
			grp = &rowGroup{key: key, raw: append([]byte(nil), raw...)}
			buckets[sum] = append(buckets[sum], grp)
			g.groups = append(g.groups, grp)
		}
		grp.rows = append(grp.rows, row)
	}
	return g, nil
}

// Len returns the number of groups.
func (g *GroupBy) Len() int { return len(g.groups) }

// Rows returns the member row indices of group i, in source order. The
// slice is borrowed; callers must not modify it.
func (g *GroupBy) Rows(i int) []int { return g.groups[i].rows }

// A Group is one partition: its key values in group-by column order and its
// member row indices in source order.
type Group struct {
	Key  []series.Value
	Rows []int
}

// Groups returns every partition in first-seen key order. Key and row
// slices are borrowed; callers must not modify them.
func (g *GroupBy) Groups() []Group {
	out := make([]Group, len(g.groups))
	for i, grp := range g.groups {
		out[i] = Group{Key: grp.key, Rows: grp.rows}
	}
	return out
}

// Sum aggregates each numeric non-key column by summing its non-null cells
// per group. Integer sums widen to 64 bits.
func (g *GroupBy) Sum() (*Frame, error) {
	return g.aggregate(series.SumIndices, func(s series.Series) (datatype.Kind, bool) {
		kind, err := series.SumKind(s.Kind())
		return kind, err == nil
	})
}

// Mean aggregates each numeric non-key column by averaging its non-null
// cells per group. Means are always float64.
func (g *GroupBy) Mean() (*Frame, error) {
	return g.aggregate(series.MeanIndices, func(s series.Series) (datatype.Kind, bool) {
		return datatype.KindFloat64, s.Kind().IsNumeric()
	})
}

// Min aggregates each numeric non-key column by its smallest non-null cell
// per group, keeping the column kind.
func (g *GroupBy) Min() (*Frame, error) {
	return g.aggregate(series.MinIndices, func(s series.Series) (datatype.Kind, bool) {
		return s.Kind(), s.Kind().IsNumeric()
	})
}

// Max aggregates each numeric non-key column by its largest non-null cell
// per group, keeping the column kind.
func (g *GroupBy) Max() (*Frame, error) {
	return g.aggregate(series.MaxIndices, func(s series.Series) (datatype.Kind, bool) {
		return s.Kind(), s.Kind().IsNumeric()
	})
}

// Count aggregates every non-key column by counting its non-null cells per
// group. Count is defined for all column kinds and yields uint32 columns.
func (g *GroupBy) Count() (*Frame, error) {
	return g.aggregate(series.CountIndices, func(s series.Series) (datatype.Kind, bool) {
		return datatype.KindUint32, true
	})
}

// aggregate builds the output frame: one row per group, key columns first
// in group-by order, then one aggregated column per eligible non-key
// column. Ineligible columns are dropped from the output.
func (g *GroupBy) aggregate(
	agg func(series.Series, []int) (series.Value, error),
	eligible func(series.Series) (datatype.Kind, bool),
) (*Frame, error) {
	out := NewEmpty()

	keySet := make(map[string]struct{}, len(g.keys))
	for i, name := range g.keys {
		keySet[name] = struct{}{}
		src, err := g.frame.Column(name)
		if err != nil {
			return nil, err
		}
		keyCol, err := series.NewEmpty(name, src.Kind())
		if err != nil {
			return nil, err
		}
		for _, grp := range g.groups {
			if err := keyCol.AppendValue(grp.key[i]); err != nil {
				return nil, err
			}
		}
		if err := out.AddColumn(keyCol); err != nil {
			return nil, err
		}
	}

	for _, src := range g.frame.columns {
		if _, ok := keySet[src.Name()]; ok {
			continue
		}
		outKind, ok := eligible(src)
		if !ok {
			continue
		}
		col, err := series.NewEmpty(src.Name(), outKind)
		if err != nil {
			return nil, err
		}
		for _, grp := range g.groups {
			v, err := agg(src, grp.rows)
			if err != nil {
				return nil, err
			}
			if err := col.AppendValue(v); err != nil {
				return nil, err
			}
		}
		if err := out.AddColumn(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}
