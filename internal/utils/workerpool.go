package utils

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type task[T any] struct {
	index int
	value T
}

// WorkerPool runs a fallible mapping function over a slice with bounded
// concurrency. Results keep their input order. The first error cancels the
// remaining work.
type WorkerPool[I any, O any] struct {
	maxWorkers int
	f          func(ctx context.Context, value I) (O, error)
	onProgress func(current int, total int)
}

func NewWorkerPool[I any, O any](f func(ctx context.Context, value I) (O, error), maxWorkers int) *WorkerPool[I, O] {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool[I, O]{
		maxWorkers: maxWorkers,
		f:          f,
	}
}

// OnProgress registers a callback invoked after each completed task with the
// number of tasks finished so far.
func (wp *WorkerPool[I, O]) OnProgress(f func(current int, total int)) {
	wp.onProgress = f
}

// Map applies the pool's function to every element of input.
func (wp *WorkerPool[I, O]) Map(ctx context.Context, input []I) ([]O, error) {
	g, ctx := errgroup.WithContext(ctx)

	tasks := make(chan task[I])
	g.Go(func() error {
		defer close(tasks)
		for i, value := range input {
			select {
			case tasks <- task[I]{index: i, value: value}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	output := make([]O, len(input))
	var done atomic.Int64

	for range wp.maxWorkers {
		g.Go(func() error {
			for t := range tasks {
				result, err := wp.f(ctx, t.value)
				if err != nil {
					return err
				}
				output[t.index] = result

				if wp.onProgress != nil {
					wp.onProgress(int(done.Add(1)), len(input))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}
