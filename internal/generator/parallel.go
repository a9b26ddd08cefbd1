package generator

import (
	"context"
	"runtime"
	"sync"

	"github.com/linksbom/linksbom/internal/model"
)

// ExtractFunc builds a Component from a single file path. Implementations
// must be safe to call concurrently from multiple goroutines.
type ExtractFunc func(ctx context.Context, path string) (*model.Component, error)

// extractResult carries one path's outcome plus its original index, so
// results can be reassembled in input order after the worker pool runs.
type extractResult struct {
	index     int
	component *model.Component
	err       error
}

// ExtractParallel fans paths across a bounded worker pool (runtime.NumCPU
// by default; pass a positive workers value to override) and collects the
// results back in input order. Adapted from the teacher's
// ParallelExecutor fan-out/collect pattern
// (internal/core/parallel_executor.go), generalized from vendor syncing to
// metadata extraction.
//
// The first error encountered is returned alongside whatever partial
// results were produced; callers that want best-effort behavior should
// inspect the returned slice even on error (entries for failed paths are
// nil).
func ExtractParallel(ctx context.Context, paths []string, workers int, extract ExtractFunc) ([]*model.Component, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int, len(paths))
	results := make(chan extractResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go extractWorker(ctx, &wg, paths, jobs, results, extract)
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]*model.Component, len(paths))
	var firstErr error
	for r := range results {
		out[r.index] = r.component
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
	}

	return out, firstErr
}

func extractWorker(ctx context.Context, wg *sync.WaitGroup, paths []string, jobs <-chan int, results chan<- extractResult, extract ExtractFunc) {
	defer wg.Done()

	for i := range jobs {
		if ctx.Err() != nil {
			results <- extractResult{index: i, err: ctx.Err()}
			continue
		}

		c, err := extract(ctx, paths[i])
		results <- extractResult{index: i, component: c, err: err}
	}
}
