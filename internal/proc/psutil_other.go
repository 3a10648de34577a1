//go:build !linux

package proc

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

type psutilSource struct{}

// NewSource returns a gopsutil backed process source.
func NewSource() Source {
	return psutilSource{}
}

func (psutilSource) PIDs(ctx context.Context) ([]int, error) {
	raw, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	pids := make([]int, 0, len(raw))
	for _, p := range raw {
		if p > 0 {
			pids = append(pids, int(p))
		}
	}
	return pids, nil
}

func (psutilSource) Record(ctx context.Context, pid int) (Sample, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}
	ppid, err := p.PpidWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}
	mem, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}

	s := Sample{
		PID:  pid,
		PPID: int(ppid),
		Comm: name,
		RSS:  mem.RSS,
	}
	if ms, err := p.CreateTimeWithContext(ctx); err == nil {
		s.Started = time.UnixMilli(ms)
	}
	if exe, err := p.ExeWithContext(ctx); err == nil {
		s.Exe = exe
	}
	return s, nil
}

func (psutilSource) Cmdline(ctx context.Context, pid int) ([]string, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, err
	}
	return p.CmdlineSliceWithContext(ctx)
}
