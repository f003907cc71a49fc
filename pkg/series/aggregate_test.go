package series_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/series"
)

func TestSumMinMaxMean(t *testing.T) {
	col := series.NewFromPointers("v", []*int64{ptr(int64(4)), nil, ptr(int64(-2)), ptr(int64(10))})

	sum, ok := series.Sum(col)
	require.True(t, ok)
	require.Equal(t, int64(12), sum)

	minV, ok := series.Min(col)
	require.True(t, ok)
	require.Equal(t, int64(-2), minV)

	maxV, ok := series.Max(col)
	require.True(t, ok)
	require.Equal(t, int64(10), maxV)

	mean, ok := series.Mean(col)
	require.True(t, ok)
	require.Equal(t, 4.0, mean)
}

func TestAggregates_AllNull(t *testing.T) {
	col := series.NewFromPointers("v", []*float64{nil, nil})

	_, ok := series.Sum(col)
	require.False(t, ok)
	_, ok = series.Mean(col)
	require.False(t, ok)
	_, ok = series.Min(col)
	require.False(t, ok)
}

func TestSumIndices(t *testing.T) {
	col := series.NewFromPointers("v", []*int32{ptr(int32(1)), ptr(int32(2)), nil, ptr(int32(8))})

	v, err := series.SumIndices(col, []int{0, 2, 3})
	require.NoError(t, err)
	require.Equal(t, datatype.KindInt64, v.Kind(), "signed sums widen to int64")
	require.Equal(t, int64(9), v.Int64())

	v, err = series.SumIndices(col, []int{2})
	require.NoError(t, err)
	require.True(t, v.IsNil(), "all-null selection sums to null")

	strs := series.New("s", []string{"a"})
	_, err = series.SumIndices(strs, []int{0})
	require.ErrorIs(t, err, series.ErrUnsupportedAggregation)
}

func TestMinMaxIndices_KeepKind(t *testing.T) {
	col := series.New("v", []float32{2.5, 1.5, 9.5})

	v, err := series.MinIndices(col, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, datatype.KindFloat32, v.Kind())
	require.Equal(t, 1.5, v.Float64())

	v, err = series.MaxIndices(col, []int{0, 1})
	require.NoError(t, err)
	require.Equal(t, 2.5, v.Float64())
}

func TestCountIndices(t *testing.T) {
	col := series.NewFromPointers("s", []*string{ptr("a"), nil, ptr("b")})

	v, err := series.CountIndices(col, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, datatype.KindUint32, v.Kind())
	require.Equal(t, uint64(2), v.Uint64(), "count skips nulls and supports every kind")
}

func TestMeanIndices(t *testing.T) {
	col := series.NewFromPointers("v", []*uint8{ptr(uint8(2)), nil, ptr(uint8(4))})

	v, err := series.MeanIndices(col, []int{0, 1, 2})
	require.NoError(t, err)
	require.Equal(t, 3.0, v.Float64())
}
