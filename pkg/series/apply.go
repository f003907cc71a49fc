package series

import (
	"context"

	"github.com/grafana/dskit/concurrency"
)

// Apply maps every optional cell of c through fn, producing a new column of
// the same element type. fn receives the cell value and its validity and
// returns the output cell and validity; returning ok=false emits a null.
func (c *Column[T]) Apply(fn func(v T, ok bool) (T, bool)) *Column[T] {
	c.checkInvariant()
	out := NewEmptyOf[T](c.name)
	for i := range c.values {
		v, ok := fn(c.values[i], c.validity.Get(i))
		if ok {
			out.Append(v)
		} else {
			out.AppendNull()
		}
	}
	return out
}

// Map is Apply for functions that change the element type.
func Map[T, U Element](c *Column[T], fn func(v T, ok bool) (U, bool)) *Column[U] {
	c.checkInvariant()
	out := NewEmptyOf[U](c.name)
	for i := range c.values {
		v, ok := fn(c.values[i], c.validity.Get(i))
		if ok {
			out.Append(v)
		} else {
			out.AppendNull()
		}
	}
	return out
}

// ParApply is Apply fanned out across a fixed-size worker pool. The index
// space is split into contiguous disjoint ranges, one per worker; workers
// share no mutable state and each output slot is written exactly once, so
// output order is identical to Apply regardless of scheduling. All workers
// complete before ParApply returns.
//
// fn must be safe for concurrent invocation. workers values below 1 run a
// single worker.
func (c *Column[T]) ParApply(ctx context.Context, workers int, fn func(v T, ok bool) (T, bool)) (*Column[T], error) {
	c.checkInvariant()
	n := len(c.values)
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = max(n, 1)
	}

	outValues := make([]T, n)
	outValid := make([]bool, n)

	err := concurrency.ForEachJob(ctx, workers, workers, func(_ context.Context, job int) error {
		// Contiguous range [start, end) owned exclusively by this worker.
		start := job * n / workers
		end := (job + 1) * n / workers
		for i := start; i < end; i++ {
			outValues[i], outValid[i] = fn(c.values[i], c.validity.Get(i))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := NewNullable(c.name, outValues, outValid)
	if err != nil {
		return nil, err
	}
	return out, nil
}
