package frameio

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tablekit/tablekit/pkg/frame"
	"github.com/tablekit/tablekit/pkg/series"
)

func outputFrame(t *testing.T) *frame.Frame {
	t.Helper()
	score, err := series.NewNullable("score", []float64{1.5, 0}, []bool{true, false})
	require.NoError(t, err)
	f, err := frame.New(
		series.New("id", []int64{1, 2}),
		series.New("name", []string{"ann", "bob"}),
		score,
	)
	require.NoError(t, err)
	return f
}

func TestWriteCSVTo(t *testing.T) {
	f := outputFrame(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(f, &buf, DefaultWriteOptions()))
	require.Equal(t, "id,name,score\n1,ann,1.5\n2,bob,\n", buf.String())

	t.Run("custom options", func(t *testing.T) {
		var buf bytes.Buffer
		opts := WriteOptions{Delimiter: ';', NARep: "NA"}
		require.NoError(t, WriteCSVTo(f, &buf, opts))
		require.Equal(t, "1;ann;1.5\n2;bob;NA\n", buf.String())
	})
}

func TestWriteCSVRoundTrip(t *testing.T) {
	f := outputFrame(t)
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(f, path, DefaultWriteOptions()))

	back, err := ReadCSV(path, DefaultReadOptions())
	require.NoError(t, err)
	require.True(t, f.Equal(back), "writer output must read back identically")
}

func TestWriteJSONTo(t *testing.T) {
	f := outputFrame(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSONTo(f, &buf))

	var records []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	require.Equal(t, "ann", records[0]["name"])
	require.Equal(t, 1.5, records[0]["score"])
	require.Nil(t, records[1]["score"], "null cells become JSON null")
}

func TestWriteYAMLTo(t *testing.T) {
	f := outputFrame(t)

	var buf bytes.Buffer
	require.NoError(t, WriteYAMLTo(f, &buf))

	var records []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	require.Equal(t, "bob", records[1]["name"])
	require.Nil(t, records[1]["score"])
}

func TestWriteEmptyFrame(t *testing.T) {
	f, err := frame.New(series.New("id", []int64{}))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSVTo(f, &buf, DefaultWriteOptions()))
	require.Equal(t, "id\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSONTo(f, &buf))
	require.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
