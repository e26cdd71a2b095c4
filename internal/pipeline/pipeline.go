// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"io"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls the worker pool.
type Config struct {
	Threads int // number of worker goroutines (0 = all CPUs)
	Buffer  int // channel depth; 0 = Threads*2
}

// Source yields the next input. It returns io.EOF when exhausted.
type Source[In any] func() (In, error)

type job[T any] struct {
	idx  int
	item T
}

// ForEachOrdered reads every item from next, runs work on Threads goroutines,
// and calls visit once per item in the order the items were read. The first
// error from next, work or visit stops the run and is returned (including
// context cancellation).
//
// next is not called again once the run is canceled. A call already blocked
// inside next (a read from stdin, say) cannot be interrupted from here; the
// run returns when that call does.
func ForEachOrdered[In, Out any](
	ctx context.Context,
	cfg Config,
	next Source[In],
	work func(context.Context, In) (Out, error),
	visit func(Out) error,
) error {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	buf := cfg.Buffer
	if buf <= 0 {
		buf = threads * 2
	}

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan job[In], buf)
	results := make(chan job[Out], buf)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		for idx := 0; ; idx++ {
			if err := gctx.Err(); err != nil {
				return err
			}
			item, err := next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case jobs <- job[In]{idx: idx, item: item}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// Workers
	var wg sync.WaitGroup
	wg.Add(threads)
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				out, err := work(gctx, j.item)
				if err != nil {
					return err
				}
				select {
				case results <- job[Out]{idx: j.idx, item: out}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector: release results strictly by index. Returning early cancels
	// gctx, which unblocks workers waiting to send.
	g.Go(func() error {
		pending := make(map[int]Out)
		want := 0
		for r := range results {
			pending[r.idx] = r.item
			for {
				out, ok := pending[want]
				if !ok {
					break
				}
				delete(pending, want)
				want++
				if err := visit(out); err != nil {
					return err
				}
			}
		}
		return nil
	})

	err := g.Wait()
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
