package frame

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/tablekit/tablekit/pkg/series"
)

// joinIndex is a hash index from key values to the row indices carrying
// them. Duplicate keys keep every row. Null keys are never indexed.
type joinIndex struct {
	buckets map[uint64][]*joinEntry
	digest  *xxhash.Digest
	scratch []byte
}

type joinEntry struct {
	raw  []byte
	rows []int
}

func buildJoinIndex(key series.Series) (*joinIndex, error) {
	idx := &joinIndex{
		buckets: make(map[uint64][]*joinEntry),
		digest:  xxhash.New(),
	}
	for row := 0; row < key.Len(); row++ {
		v, err := key.Value(row)
		if err != nil {
			return nil, err
		}
		if v.IsNil() {
			continue
		}
		sum, raw := idx.hash(v)
		entry := idx.find(sum, raw)
		if entry == nil {
			entry = &joinEntry{raw: append([]byte(nil), raw...)}
			idx.buckets[sum] = append(idx.buckets[sum], entry)
		}
		entry.rows = append(entry.rows, row)
	}
	return idx, nil
}

func (idx *joinIndex) hash(v series.Value) (uint64, []byte) {
	idx.digest.Reset()
	v.AppendHash(idx.digest)
	idx.scratch = v.AppendKey(idx.scratch[:0])
	return idx.digest.Sum64(), idx.scratch
}

func (idx *joinIndex) find(sum uint64, raw []byte) *joinEntry {
	for _, entry := range idx.buckets[sum] {
		if string(entry.raw) == string(raw) {
			return entry
		}
	}
	return nil
}

// lookup returns the rows indexed under v, or nil for null or absent keys.
func (idx *joinIndex) lookup(v series.Value) []int {
	if v.IsNil() {
		return nil
	}
	sum, raw := idx.hash(v)
	if entry := idx.find(sum, raw); entry != nil {
		return entry.rows
	}
	return nil
}

// InnerJoin matches rows of f and other on the given key columns and emits
// one output row per matching pair. The right table is indexed and the left
// table is probed in row order, so output rows follow left row order, with
// ties in right row order. Null keys never match. The output holds every
// left column followed by the right table's non-key columns; a non-key name
// present on both sides fails with ErrDuplicateColumn.
func (f *Frame) InnerJoin(other *Frame, leftOn, rightOn string) (*Frame, error) {
	leftKey, rightKey, err := joinKeys(f, other, leftOn, rightOn)
	if err != nil {
		return nil, err
	}
	idx, err := buildJoinIndex(rightKey)
	if err != nil {
		return nil, err
	}

	var leftRows, rightRows []int
	for row := 0; row < leftKey.Len(); row++ {
		v, err := leftKey.Value(row)
		if err != nil {
			return nil, err
		}
		for _, match := range idx.lookup(v) {
			leftRows = append(leftRows, row)
			rightRows = append(rightRows, match)
		}
	}
	return assembleJoin(f, other, rightOn, leftRows, rightRows)
}

// LeftJoin keeps every left row. Unmatched left rows emit with the right
// table's columns null-filled.
func (f *Frame) LeftJoin(other *Frame, leftOn, rightOn string) (*Frame, error) {
	leftKey, rightKey, err := joinKeys(f, other, leftOn, rightOn)
	if err != nil {
		return nil, err
	}
	idx, err := buildJoinIndex(rightKey)
	if err != nil {
		return nil, err
	}

	var leftRows, rightRows []int
	for row := 0; row < leftKey.Len(); row++ {
		v, err := leftKey.Value(row)
		if err != nil {
			return nil, err
		}
		matches := idx.lookup(v)
		if len(matches) == 0 {
			leftRows = append(leftRows, row)
			rightRows = append(rightRows, -1)
			continue
		}
		for _, match := range matches {
			leftRows = append(leftRows, row)
			rightRows = append(rightRows, match)
		}
	}
	return assembleJoin(f, other, rightOn, leftRows, rightRows)
}

// RightJoin keeps every right row. The left table is indexed and the right
// table is probed in row order, so output rows follow right row order.
// Unmatched right rows emit with the left table's columns null-filled. The
// output mirrors the other joins side for side: the right table's columns
// come first with the key column intact, then the left table's non-key
// columns, so an unmatched right row keeps its key value.
func (f *Frame) RightJoin(other *Frame, leftOn, rightOn string) (*Frame, error) {
	leftKey, rightKey, err := joinKeys(f, other, leftOn, rightOn)
	if err != nil {
		return nil, err
	}
	idx, err := buildJoinIndex(leftKey)
	if err != nil {
		return nil, err
	}

	var leftRows, rightRows []int
	for row := 0; row < rightKey.Len(); row++ {
		v, err := rightKey.Value(row)
		if err != nil {
			return nil, err
		}
		matches := idx.lookup(v)
		if len(matches) == 0 {
			leftRows = append(leftRows, -1)
			rightRows = append(rightRows, row)
			continue
		}
		for _, match := range matches {
			leftRows = append(leftRows, match)
			rightRows = append(rightRows, row)
		}
	}
	return assembleRightJoin(f, other, leftOn, leftRows, rightRows)
}

// OuterJoin keeps every row from both sides. Matched pairs and unmatched
// left rows emit first, in left row order; unmatched right rows follow in
// right row order with the left columns null-filled.
func (f *Frame) OuterJoin(other *Frame, leftOn, rightOn string) (*Frame, error) {
	leftKey, rightKey, err := joinKeys(f, other, leftOn, rightOn)
	if err != nil {
		return nil, err
	}
	idx, err := buildJoinIndex(rightKey)
	if err != nil {
		return nil, err
	}

	var leftRows, rightRows []int
	matched := make([]bool, rightKey.Len())
	for row := 0; row < leftKey.Len(); row++ {
		v, err := leftKey.Value(row)
		if err != nil {
			return nil, err
		}
		matches := idx.lookup(v)
		if len(matches) == 0 {
			leftRows = append(leftRows, row)
			rightRows = append(rightRows, -1)
			continue
		}
		for _, match := range matches {
			matched[match] = true
			leftRows = append(leftRows, row)
			rightRows = append(rightRows, match)
		}
	}
	for row := range matched {
		if !matched[row] {
			leftRows = append(leftRows, -1)
			rightRows = append(rightRows, row)
		}
	}
	return assembleJoin(f, other, rightOn, leftRows, rightRows)
}

// joinKeys resolves both key columns and rejects keys of differing kinds.
func joinKeys(left, right *Frame, leftOn, rightOn string) (series.Series, series.Series, error) {
	leftKey, err := left.Column(leftOn)
	if err != nil {
		return nil, nil, fmt.Errorf("join: left key: %w", err)
	}
	rightKey, err := right.Column(rightOn)
	if err != nil {
		return nil, nil, fmt.Errorf("join: right key: %w", err)
	}
	if leftKey.Kind() != rightKey.Kind() {
		return nil, nil, fmt.Errorf("join: %w: key %q is %s, key %q is %s",
			series.ErrTypeMismatch, leftOn, leftKey.Kind(), rightOn, rightKey.Kind())
	}
	return leftKey, rightKey, nil
}

// assembleJoin materializes the output from aligned row index lists, where
// -1 addresses a null-filled row. Left columns come first, then the right
// table's columns minus its key.
func assembleJoin(left, right *Frame, rightOn string, leftRows, rightRows []int) (*Frame, error) {
	out := NewEmpty()
	for _, c := range left.columns {
		taken, err := c.TakeNullable(leftRows)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(taken); err != nil {
			return nil, err
		}
	}
	for _, c := range right.columns {
		if c.Name() == rightOn {
			continue
		}
		if _, ok := out.index[c.Name()]; ok {
			return nil, fmt.Errorf("join: %w: %q exists on both sides", ErrDuplicateColumn, c.Name())
		}
		taken, err := c.TakeNullable(rightRows)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(taken); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// assembleRightJoin is assembleJoin mirrored for right joins: the right
// table's columns come first, key included, then the left table's columns
// minus its key.
func assembleRightJoin(left, right *Frame, leftOn string, leftRows, rightRows []int) (*Frame, error) {
	out := NewEmpty()
	for _, c := range right.columns {
		taken, err := c.TakeNullable(rightRows)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(taken); err != nil {
			return nil, err
		}
	}
	for _, c := range left.columns {
		if c.Name() == leftOn {
			continue
		}
		if _, ok := out.index[c.Name()]; ok {
			return nil, fmt.Errorf("join: %w: %q exists on both sides", ErrDuplicateColumn, c.Name())
		}
		taken, err := c.TakeNullable(leftRows)
		if err != nil {
			return nil, err
		}
		if err := out.AddColumn(taken); err != nil {
			return nil, err
		}
	}
	return out, nil
}
