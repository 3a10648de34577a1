package proc

import (
	"context"
	"errors"
	"time"
)

// ErrRecordUnavailable is returned when a single process could not be read,
// usually because it exited or is not accessible to the caller.
var ErrRecordUnavailable = errors.New("process record unavailable")

// Sample is one process as seen during a scan pass.
type Sample struct {
	PID     int
	PPID    int
	Comm    string
	RSS     uint64 // bytes
	Started time.Time
	Exe     string
}

// Source enumerates processes and reads their records.
type Source interface {
	PIDs(ctx context.Context) ([]int, error)
	Record(ctx context.Context, pid int) (Sample, error)
	Cmdline(ctx context.Context, pid int) ([]string, error)
}
