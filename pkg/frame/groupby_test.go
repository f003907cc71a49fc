package frame

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/series"
)

func salesFrame(t *testing.T) *Frame {
	t.Helper()
	f, err := New(
		series.New("city", []string{"oslo", "lima", "oslo", "lima", "oslo"}),
		series.New("amount", []int64{10, 20, 30, 40, 50}),
		series.New("note", []string{"a", "b", "c", "d", "e"}),
	)
	require.NoError(t, err)
	return f
}

func TestGroupByPartition(t *testing.T) {
	f := salesFrame(t)

	g, err := f.GroupBy("city")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())

	// First-seen order, and every row lands in exactly one group.
	require.Equal(t, []int{0, 2, 4}, g.Rows(0))
	require.Equal(t, []int{1, 3}, g.Rows(1))

	total := 0
	for i := 0; i < g.Len(); i++ {
		total += len(g.Rows(i))
	}
	require.Equal(t, f.Height(), total, "groups must partition the rows")

	groups := g.Groups()
	require.Len(t, groups, 2)
	require.Equal(t, []series.Value{series.StringValue("oslo")}, groups[0].Key)
	require.Equal(t, []int{1, 3}, groups[1].Rows)
}

func TestGroupBySum(t *testing.T) {
	f := salesFrame(t)
	g, err := f.GroupBy("city")
	require.NoError(t, err)

	out, err := g.Sum()
	require.NoError(t, err)
	// Non-numeric "note" is dropped; integer sums widen to 64 bits.
	require.Equal(t, []string{"city", "amount"}, out.Names())
	require.Equal(t, []datatype.Kind{datatype.KindString, datatype.KindInt64}, out.Kinds())
	require.Equal(t, []string{"oslo", "lima"}, columnStrings(t, out, "city"))
	require.Equal(t, []string{"90", "60"}, columnStrings(t, out, "amount"))

	// Conservation: the per-group sums add up to the source column total.
	src, err := ColumnAs[int64](f, "amount")
	require.NoError(t, err)
	srcTotal, ok := series.Sum(src)
	require.True(t, ok)
	grouped, err := ColumnAs[int64](out, "amount")
	require.NoError(t, err)
	groupTotal, ok := series.Sum(grouped)
	require.True(t, ok)
	require.Equal(t, srcTotal, groupTotal)
}

func TestGroupByMeanMinMax(t *testing.T) {
	f := salesFrame(t)
	g, err := f.GroupBy("city")
	require.NoError(t, err)

	mean, err := g.Mean()
	require.NoError(t, err)
	require.Equal(t, []datatype.Kind{datatype.KindString, datatype.KindFloat64}, mean.Kinds())
	require.Equal(t, []string{"30", "30"}, columnStrings(t, mean, "amount"))

	min, err := g.Min()
	require.NoError(t, err)
	require.Equal(t, datatype.KindInt64, min.Kinds()[1], "min keeps the column kind")
	require.Equal(t, []string{"10", "20"}, columnStrings(t, min, "amount"))

	max, err := g.Max()
	require.NoError(t, err)
	require.Equal(t, []string{"50", "40"}, columnStrings(t, max, "amount"))
}

func TestGroupByCount(t *testing.T) {
	amount, err := series.NewNullable("amount", []int64{10, 0, 30, 40}, []bool{true, false, true, true})
	require.NoError(t, err)
	f, err := New(
		series.New("city", []string{"oslo", "oslo", "lima", "lima"}),
		amount,
		series.New("note", []string{"a", "b", "c", "d"}),
	)
	require.NoError(t, err)

	g, err := f.GroupBy("city")
	require.NoError(t, err)
	out, err := g.Count()
	require.NoError(t, err)

	// Count covers every non-key column, nulls excluded.
	require.Equal(t, []string{"city", "amount", "note"}, out.Names())
	require.Equal(t, datatype.KindUint32, out.Kinds()[1])
	require.Equal(t, []string{"1", "2"}, columnStrings(t, out, "amount"))
	require.Equal(t, []string{"2", "2"}, columnStrings(t, out, "note"))
}

func TestGroupByNullKeys(t *testing.T) {
	city, err := series.NewNullable("city", []string{"oslo", "", "oslo", ""}, []bool{true, false, true, false})
	require.NoError(t, err)
	f, err := New(city, series.New("amount", []int64{1, 2, 3, 4}))
	require.NoError(t, err)

	g, err := f.GroupBy("city")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len(), "null keys form one distinguished group")
	require.Equal(t, []int{1, 3}, g.Rows(1))

	out, err := g.Sum()
	require.NoError(t, err)
	keys, err := out.Column("city")
	require.NoError(t, err)
	require.False(t, keys.IsNull(0))
	require.True(t, keys.IsNull(1), "the null group keeps a null key cell")
	require.Equal(t, []string{"4", "6"}, columnStrings(t, out, "amount"))
}

func TestGroupByAllNullAggregate(t *testing.T) {
	amount, err := series.NewNullable("amount", []int64{0, 0, 7}, []bool{false, false, true})
	require.NoError(t, err)
	f, err := New(series.New("k", []string{"a", "a", "b"}), amount)
	require.NoError(t, err)

	g, err := f.GroupBy("k")
	require.NoError(t, err)
	out, err := g.Sum()
	require.NoError(t, err)

	sums, err := out.Column("amount")
	require.NoError(t, err)
	require.True(t, sums.IsNull(0), "all-null group aggregates to null, not an error")
	require.Equal(t, "7", sums.ValueString(1))
}

func TestGroupByCompositeKeyFraming(t *testing.T) {
	// Both rows concatenate to the same bytes if string payloads are not
	// length-framed: the first cell of row one ends with NUL plus the
	// string kind tag, imitating the tuple boundary of row two.
	f, err := New(
		series.New("k1", []string{"a\x00\x0cb", "a"}),
		series.New("k2", []string{"c", "b\x00\x0cc"}),
		series.New("v", []int64{1, 2}),
	)
	require.NoError(t, err)

	g, err := f.GroupBy("k1", "k2")
	require.NoError(t, err)
	require.Equal(t, 2, g.Len(), "distinct key tuples must never merge")
	require.Equal(t, []int{0}, g.Rows(0))
	require.Equal(t, []int{1}, g.Rows(1))
}

func TestGroupByMultiKey(t *testing.T) {
	f, err := New(
		series.New("a", []string{"x", "x", "y", "x"}),
		series.New("b", []int64{1, 2, 1, 1}),
		series.New("v", []int64{10, 20, 30, 40}),
	)
	require.NoError(t, err)

	g, err := f.GroupBy("a", "b")
	require.NoError(t, err)
	require.Equal(t, 3, g.Len())

	out, err := g.Sum()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "v"}, out.Names())
	require.Equal(t, []string{"50", "20", "30"}, columnStrings(t, out, "v"))
}

func TestGroupByErrors(t *testing.T) {
	f := salesFrame(t)

	_, err := f.GroupBy("missing")
	require.ErrorIs(t, err, ErrColumnNotFound)

	_, err = f.GroupBy()
	require.ErrorIs(t, err, ErrColumnNotFound)
}
