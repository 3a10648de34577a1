package batch

import (
	"context"
	"sync"

	"github.com/pranshuparmar/memtree/internal/proc"
)

// Result is the outcome of reading one process.
type Result struct {
	PID    int
	Sample proc.Sample
	Label  string
	Err    error // If the record could not be read
}

// ReadAsync reads and labels every pid concurrently, at most concurrency
// at a time. Results stream to the returned channel as they complete and the
// channel is closed once all pids are done. Callers must drain it.
func ReadAsync(ctx context.Context, src proc.Source, pids []int, concurrency int) <-chan Result {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(chan Result)
	semaphore := make(chan struct{}, concurrency) // Limit concurrent readers
	var wg sync.WaitGroup

	for _, pid := range pids {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			results <- readProcess(ctx, src, pid)
		}(pid)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// readProcess reads a single pid unless the scan was already cancelled
func readProcess(ctx context.Context, src proc.Source, pid int) Result {
	r := Result{PID: pid}
	if err := ctx.Err(); err != nil {
		r.Err = err
		return r
	}

	s, err := src.Record(ctx, pid)
	if err != nil {
		r.Err = err
		return r
	}
	r.Sample = s
	r.Label = proc.ResolveLabel(ctx, src, pid, s.Comm)
	return r
}
