package frame

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// defaultDisplayRows bounds String output so a large frame stays readable.
const defaultDisplayRows = 10

// Render writes a plain-text table of the frame to w: a header of column
// names and kinds, then at most maxRows rows. Null cells render as "null".
// maxRows <= 0 renders every row.
func (f *Frame) Render(w io.Writer, maxRows int) error {
	rows, cols := f.Shape()
	if _, err := fmt.Fprintf(w, "shape: (%d, %d)\n", rows, cols); err != nil {
		return err
	}
	if cols == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	header := make([]string, cols)
	for i, c := range f.columns {
		header[i] = fmt.Sprintf("%s (%s)", c.Name(), c.Kind())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	shown := rows
	if maxRows > 0 && maxRows < rows {
		shown = maxRows
	}
	cells := make([]string, cols)
	for i := 0; i < shown; i++ {
		for j, c := range f.columns {
			cells[j] = c.ValueString(i)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if shown < rows {
		fmt.Fprintf(tw, "... %d more rows\n", rows-shown)
	}
	return tw.Flush()
}

// String renders the frame with the default row limit.
func (f *Frame) String() string {
	var sb strings.Builder
	if err := f.Render(&sb, defaultDisplayRows); err != nil {
		return fmt.Sprintf("frame render error: %v", err)
	}
	return sb.String()
}
