package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult pairs one script's path with its Run result.
type BatchResult struct {
	Path   string
	Result *Result
	Err    error
}

// RunBatch executes every (path, source) pair concurrently, each against
// its own VM/evaluator instance. Results land at the same index as their
// input pair regardless of completion order, so no mutex is needed.
//
// This concurrency is strictly a driver-layer optimization: the VM's
// per-instance global array (spec.md §9) means no two goroutines ever touch
// shared mutable interpreter state.
func RunBatch(ctx context.Context, sources map[string]string, backend Backend, jobs int) []BatchResult {
	paths := make([]string, 0, len(sources))
	for p := range sources {
		paths = append(paths, p)
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				results[i] = BatchResult{Path: path, Err: gctx.Err()}
				return nil
			default:
			}
			res, err := Run(sources[path], backend)
			results[i] = BatchResult{Path: path, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait() // Run never returns a fatal error the group needs to abort on

	return results
}
