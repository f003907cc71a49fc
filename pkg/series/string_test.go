package series_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/series"
)

func TestStr_TypeMismatch(t *testing.T) {
	col := series.New("v", []int64{1, 2})

	_, err := series.Str(col)
	require.ErrorIs(t, err, series.ErrTypeMismatch)
}

func TestStr_Lengths(t *testing.T) {
	col := series.NewFromPointers("s", []*string{ptr("hello"), nil, ptr("")})

	ops, err := series.Str(col)
	require.NoError(t, err)

	lengths := ops.Lengths()
	v, _, _ := lengths.Get(0)
	require.Equal(t, uint32(5), v)
	require.True(t, lengths.IsNull(1))
	v, _, _ = lengths.Get(2)
	require.Equal(t, uint32(0), v)
}

func TestStr_Contains(t *testing.T) {
	col := series.NewFromPointers("s", []*string{ptr("grape"), ptr("fig"), nil})

	ops, err := series.Str(col)
	require.NoError(t, err)

	requireMask(t, ops.Contains("g"), []bool{true, true, false})
	requireMask(t, ops.HasPrefix("f"), []bool{false, true, false})
	requireMask(t, ops.HasSuffix("e"), []bool{true, false, false})
}

func TestStr_Transforms(t *testing.T) {
	col := series.NewFromPointers("s", []*string{ptr("  Mixed Case  "), nil})

	ops, err := series.Str(col)
	require.NoError(t, err)

	require.Equal(t, "  MIXED CASE  ", ops.ToUpper().ValueString(0))
	require.Equal(t, "  mixed case  ", ops.ToLower().ValueString(0))
	require.Equal(t, "Mixed Case", ops.Strip().ValueString(0))
	require.Equal(t, "  Mixed_Case  ", ops.Replace(" Case", "_Case").ValueString(0))
	require.True(t, ops.ToUpper().IsNull(1), "transforms propagate nulls")
}
