// tablekit-inspect reads CSV files and prints their contents as frames.
//
// Usage:
//
//	tablekit-inspect [flags] file.csv [file.csv ...]
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tablekit/tablekit/pkg/frame"
	"github.com/tablekit/tablekit/pkg/frameio"
)

func main() {
	var (
		columns  = flag.String("columns", "", "comma-separated column names to keep, in order")
		sortBy   = flag.String("sort", "", "comma-separated column names to sort by")
		desc     = flag.Bool("desc", false, "sort descending")
		head     = flag.Int("head", 10, "rows to print per file, 0 prints all")
		noHeader = flag.Bool("no-header", false, "treat the first record as data, not column names")
		verbose  = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: tablekit-inspect [flags] file.csv [file.csv ...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := frameio.DefaultReadOptions()
	opts.Header = !*noHeader
	if *columns != "" {
		opts.UseColumns = splitNames(*columns)
	}

	failed := false
	for _, path := range flag.Args() {
		if err := inspect(logger, path, opts, splitNames(*sortBy), *desc, *head); err != nil {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func inspect(logger log.Logger, path string, opts frameio.ReadOptions, sortBy []string, desc bool, head int) error {
	file, err := os.Open(path)
	if err != nil {
		level.Error(logger).Log("msg", "open failed", "path", path, "err", err)
		return err
	}
	defer file.Close()

	f, err := frameio.NewReader(logger, opts).Read(file)
	if err != nil {
		level.Error(logger).Log("msg", "read failed", "path", path, "err", err)
		return err
	}

	if len(sortBy) > 0 {
		keys := make([]frame.SortKey, len(sortBy))
		for i, name := range sortBy {
			keys[i] = frame.SortKey{Name: name, Descending: desc}
		}
		if f, err = f.Sort(keys...); err != nil {
			level.Error(logger).Log("msg", "sort failed", "path", path, "err", err)
			return err
		}
	}

	fmt.Printf("%s:\n", path)
	return f.Render(os.Stdout, head)
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
