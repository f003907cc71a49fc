package series_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/datatype"
	"github.com/tablekit/tablekit/pkg/series"
)

func TestCast_RoundTrip(t *testing.T) {
	col := series.NewFromPointers("v", []*int64{ptr(int64(1)), nil, ptr(int64(200))})

	widened, err := series.Cast(col, datatype.KindFloat64)
	require.NoError(t, err)
	require.Equal(t, datatype.KindFloat64, widened.Kind())
	require.True(t, widened.IsNull(1), "nulls remain null through a cast")

	back, err := series.Cast(widened, datatype.KindInt64)
	require.NoError(t, err)
	require.True(t, col.Equal(back), "in-range values round-trip exactly")
}

func TestCast_OutOfRange(t *testing.T) {
	col := series.New("v", []int64{1, 300})

	_, err := series.Cast(col, datatype.KindUint8)
	require.ErrorIs(t, err, series.ErrCast, "300 does not fit uint8")
}

func TestCast_NegativeToUnsigned(t *testing.T) {
	col := series.New("v", []int64{-1})

	_, err := series.Cast(col, datatype.KindUint32)
	require.ErrorIs(t, err, series.ErrCast)
}

func TestCast_FractionalToInteger(t *testing.T) {
	col := series.New("v", []float64{1.5})

	_, err := series.Cast(col, datatype.KindInt32)
	require.ErrorIs(t, err, series.ErrCast)

	whole := series.New("v", []float64{2, -7})
	out, err := series.Cast(whole, datatype.KindInt32)
	require.NoError(t, err)
	require.Equal(t, "-7", out.ValueString(1))
}

func TestCast_Float64ToFloat32(t *testing.T) {
	exact := series.New("v", []float64{0.5, 1.25})
	_, err := series.Cast(exact, datatype.KindFloat32)
	require.NoError(t, err)

	inexact := series.New("v", []float64{0.1})
	_, err = series.Cast(inexact, datatype.KindFloat32)
	require.ErrorIs(t, err, series.ErrCast, "0.1 is not exactly representable as float32")
}

func TestCast_NonNumeric(t *testing.T) {
	col := series.New("v", []string{"1"})

	_, err := series.Cast(col, datatype.KindInt64)
	require.ErrorIs(t, err, series.ErrCast)
}

func TestCast_SameKindCopies(t *testing.T) {
	col := series.New("v", []int64{1, 2})

	out, err := series.Cast(col, datatype.KindInt64)
	require.NoError(t, err)
	require.True(t, col.Equal(out))

	col.Append(3)
	require.Equal(t, 2, out.Len(), "cast output owns independent storage")
}

func TestAs_Downcast(t *testing.T) {
	var s series.Series = series.New("v", []int64{1})

	col, err := series.As[int64](s)
	require.NoError(t, err)
	require.Equal(t, 1, col.Len())

	_, err = series.As[string](s)
	require.ErrorIs(t, err, series.ErrTypeMismatch)
}
