package memory_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/pkg/memory"
)

func TestBitmap_Append(t *testing.T) {
	var bmap memory.Bitmap

	require.Equal(t, 0, bmap.Len(), "empty bitmaps should have no length")

	// Use 20 elements so appends cross a word boundary.
	for i := range 20 {
		bmap.Append(i%3 == 0)
		require.Equal(t, i+1, bmap.Len(), "length should match number of appends")
		require.GreaterOrEqual(t, bmap.Cap(), bmap.Len(), "capacity should always be greater or equal to length")
	}

	for i := range 20 {
		require.Equal(t, i%3 == 0, bmap.Get(i), "unexpected value at index %d", i)
	}
}

func TestBitmap_AppendCount(t *testing.T) {
	var bmap memory.Bitmap
	bmap.AppendCount(true, 2)
	bmap.AppendCount(false, 4)
	bmap.AppendCount(true, 3)

	expect := []bool{true, true, false, false, false, false, true, true, true}
	require.Equal(t, len(expect), bmap.Len())
	for i := range expect {
		require.Equal(t, expect[i], bmap.Get(i), "unexpected value at index %d", i)
	}
}

func TestBitmap_AppendBitmap(t *testing.T) {
	t.Run("empty destination", func(t *testing.T) {
		var src, dst memory.Bitmap

		src.AppendValues(false, true, false, false)
		dst.AppendBitmap(src)

		expect := []bool{false, true, false, false}
		for i := range expect {
			require.Equal(t, expect[i], dst.Get(i), "unexpected value at index %d", i)
		}
	})

	t.Run("two non-empty bitmaps", func(t *testing.T) {
		var src, dst memory.Bitmap

		dst.AppendValues(true, false)
		src.AppendValues(true, true, false, true, true, false, true, false, true)
		dst.AppendBitmap(src)

		expect := []bool{true, false, true, true, false, true, true, false, true, false, true}
		require.Equal(t, len(expect), dst.Len())
		for i := range expect {
			require.Equal(t, expect[i], dst.Get(i), "unexpected value at index %d", i)
		}
	})
}

func TestBitmap_Set(t *testing.T) {
	var bmap memory.Bitmap
	bmap.Resize(16)

	bmap.Set(3, true)
	bmap.Set(7, true)
	bmap.Set(12, true) // Bit in the second word.
	bmap.Set(7, false)

	for i := range bmap.Len() {
		want := i == 3 || i == 12
		require.Equal(t, want, bmap.Get(i), "unexpected value at index %d", i)
	}
}

func TestBitmap_SetRange(t *testing.T) {
	bmap := memory.NewBitmap(nil, 64)
	bmap.Resize(64)
	bmap.SetRange(2, 6, true)
	bmap.SetRange(30, 40, true)

	for i := range bmap.Len() {
		want := (i >= 2 && i < 6) || (i >= 30 && i < 40)
		require.Equal(t, want, bmap.Get(i), "unexpected value at index %d", i)
	}
}

func TestBitmap_Count(t *testing.T) {
	var bmap memory.Bitmap
	bmap.AppendValues(true, false, true, true, false)

	require.Equal(t, 3, bmap.Count(true))
	require.Equal(t, 2, bmap.Count(false))
}

func TestBitmap_IterValues(t *testing.T) {
	bmap := memory.NewBitmap(nil, 128)
	bmap.Resize(128)

	bitsToSet := []int{0, 5, 63, 64, 100, 127}
	for _, bit := range bitsToSet {
		bmap.Set(bit, true)
	}

	var indices []int
	for index := range bmap.IterValues(true) {
		indices = append(indices, index)
	}
	require.Equal(t, bitsToSet, indices)

	// The iterator must be restartable.
	indices = indices[:0]
	for index := range bmap.IterValues(true) {
		indices = append(indices, index)
	}
	require.Equal(t, bitsToSet, indices)
}

func TestBitmap_Clone(t *testing.T) {
	var bmap memory.Bitmap
	bmap.AppendValues(true, false, true)

	clone := bmap.Clone()
	bmap.Set(1, true)

	require.False(t, clone.Get(1), "clone should not observe mutation of the source")
}
