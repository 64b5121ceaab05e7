package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// forEachFile calls fn for every file on at most jobs goroutines. fn stores
// its result by index, so no locking is needed. Cancellation stops workers
// that have not started yet.
func forEachFile(ctx context.Context, files []string, jobs int, fn func(ctx context.Context, i int, path string)) error {
	if len(files) == 0 {
		return nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			fn(gctx, i, path)
			return nil
		})
	}

	return g.Wait()
}
