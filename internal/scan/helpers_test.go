package scan

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pranshuparmar/memtree/internal/proc"
)

var errGone = errors.New("no such process")

// fakeSource serves a fixed process table. When gate is set, PIDs blocks
// until the gate is closed or the scan is cancelled. recordGate does the same
// for every Record call, closing reading when the first one starts.
type fakeSource struct {
	samples    []proc.Sample
	cmdlines   map[int][]string
	missing    map[int]bool
	pidsErr    error
	gate       chan struct{}
	recordGate chan struct{}
	reading    chan struct{}

	pidsCalls   atomic.Int32
	readingOnce sync.Once
}

func (f *fakeSource) PIDs(ctx context.Context) ([]int, error) {
	f.pidsCalls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.pidsErr != nil {
		return nil, f.pidsErr
	}
	pids := make([]int, 0, len(f.samples))
	for _, s := range f.samples {
		pids = append(pids, s.PID)
	}
	return pids, nil
}

func (f *fakeSource) Record(ctx context.Context, pid int) (proc.Sample, error) {
	if f.recordGate != nil {
		f.readingOnce.Do(func() { close(f.reading) })
		select {
		case <-f.recordGate:
		case <-ctx.Done():
			return proc.Sample{}, ctx.Err()
		}
	}
	if f.missing[pid] {
		return proc.Sample{}, proc.ErrRecordUnavailable
	}
	for _, s := range f.samples {
		if s.PID == pid {
			return s, nil
		}
	}
	return proc.Sample{}, proc.ErrRecordUnavailable
}

func (f *fakeSource) Cmdline(ctx context.Context, pid int) ([]string, error) {
	args, ok := f.cmdlines[pid]
	if !ok {
		return nil, errGone
	}
	return args, nil
}

// scenarioSamples is a root process with one child plus an orphan whose
// parent is not in the table.
func scenarioSamples() []proc.Sample {
	return []proc.Sample{
		{PID: 1, PPID: 0, Comm: "init", RSS: 1000},
		{PID: 2, PPID: 1, Comm: "child", RSS: 500},
		{PID: 3, PPID: 99, Comm: "orphan", RSS: 300},
	}
}

type countingExclusions struct {
	mu    sync.Mutex
	list  []string
	calls int
}

func (c *countingExclusions) Exclusions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.list
}

// blockedInRecord returns a source whose workers park inside Record.
func blockedInRecord() *fakeSource {
	return &fakeSource{
		samples:    scenarioSamples(),
		recordGate: make(chan struct{}),
		reading:    make(chan struct{}),
	}
}

func waitReading(t *testing.T, src *fakeSource) {
	t.Helper()
	select {
	case <-src.reading:
	case <-time.After(5 * time.Second):
		t.Fatal("worker never started reading records")
	}
}

func waitCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
