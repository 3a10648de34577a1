package scan

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/pranshuparmar/memtree/internal/batch"
	"github.com/pranshuparmar/memtree/internal/logging"
	"github.com/pranshuparmar/memtree/internal/proc"
)

var (
	// ErrProcTable wraps failures to enumerate the process table at all.
	ErrProcTable = errors.New("process table unreadable")
	// ErrCancelled finishes a scan that was torn down before completing.
	ErrCancelled = errors.New("scan cancelled")
)

// readConcurrency bounds the process records read in parallel.
var readConcurrency = 4 * runtime.GOMAXPROCS(0)

// Stats summarises one pass.
type Stats struct {
	Processes int
	Skipped   int
	Excluded  int
	Elapsed   time.Duration
}

// Collect enumerates every process of src, builds and aggregates the tree
// and returns it in delivery order. Unreadable processes are skipped.
func Collect(ctx context.Context, src proc.Source, exclusions []string) (Batch, Stats, error) {
	start := time.Now()
	var st Stats

	pids, err := src.PIDs(ctx)
	if err != nil {
		return nil, st, fmt.Errorf("%w: %v", ErrProcTable, err)
	}

	samples := make([]proc.Sample, 0, len(pids))
	for r := range batch.ReadAsync(ctx, src, pids, readConcurrency) {
		if r.Err != nil {
			st.Skipped++
			continue
		}
		if proc.Excluded(r.Sample, exclusions) {
			st.Excluded++
			continue
		}
		s := r.Sample
		s.Comm = r.Label
		samples = append(samples, s)
	}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}

	t := link(samples)
	aggregate(t)

	st.Processes = len(samples)
	st.Elapsed = time.Since(start)
	return postOrder(t), st, nil
}

type worker struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

var workerLog = logging.New("scan")

// startWorker runs one pass on its own goroutine and pushes the result to q
// unless ctx is cancelled first.
func startWorker(parent context.Context, id string, src proc.Source, exclusions []string, q *Queue) *worker {
	ctx, cancel := context.WithCancel(parent)
	w := &worker{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(w.done)
		defer cancel()

		nodes, st, err := Collect(ctx, src, exclusions)
		if err != nil {
			w.err = err
			workerLog.Infoln("scan", id, "failed:", err)
			return
		}
		if ctx.Err() != nil {
			w.err = ctx.Err()
			workerLog.Debugln("scan", id, "cancelled before publish")
			return
		}
		q.Push(nodes)
		workerLog.Infoln("scan", id, "published", st.Processes, "processes,", st.Skipped, "skipped,", st.Excluded, "excluded in", st.Elapsed)
	}()

	return w
}

// stop cancels the worker and waits for its goroutine to exit.
func (w *worker) stop() {
	w.cancel()
	<-w.done
}

func (w *worker) exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}
