//go:build linux

package proc

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

const procRoot = "/proc"

type procfsSource struct {
	root     string
	pageSize int

	bootOnce sync.Once
	boot     time.Time
}

// NewSource returns the procfs backed process source.
func NewSource() Source {
	return newProcfsSource(procRoot, unix.Getpagesize())
}

func newProcfsSource(root string, pageSize int) *procfsSource {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &procfsSource{root: root, pageSize: pageSize}
}

func (s *procfsSource) PIDs(ctx context.Context) ([]int, error) {
	names, err := reader.ReadDirNames(s.root)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.root, err)
	}
	pids := make([]int, 0, len(names))
	for _, name := range names {
		pid, err := strconv.Atoi(name)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

func (s *procfsSource) Record(ctx context.Context, pid int) (Sample, error) {
	dir := filepath.Join(s.root, strconv.Itoa(pid))

	raw, err := reader.ReadFile(filepath.Join(dir, "stat"))
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}
	st, err := parseStat(string(raw))
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}

	raw, err = reader.ReadFile(filepath.Join(dir, "statm"))
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}
	rss, err := parseStatm(string(raw), s.pageSize)
	if err != nil {
		return Sample{}, fmt.Errorf("pid %d: %w: %v", pid, ErrRecordUnavailable, err)
	}

	// exe is unreadable for kernel threads and other users' processes
	exe, _ := reader.ReadLink(filepath.Join(dir, "exe"))

	return Sample{
		PID:     pid,
		PPID:    st.ppid,
		Comm:    st.comm,
		RSS:     rss,
		Started: startTime(s.bootTime(), st.startTicks),
		Exe:     exe,
	}, nil
}

func (s *procfsSource) Cmdline(ctx context.Context, pid int) ([]string, error) {
	raw, err := reader.ReadFile(filepath.Join(s.root, strconv.Itoa(pid), "cmdline"))
	if err != nil {
		return nil, err
	}
	return splitCmdline(raw), nil
}

func (s *procfsSource) bootTime() time.Time {
	s.bootOnce.Do(func() {
		raw, err := reader.ReadFile(filepath.Join(s.root, "stat"))
		if err != nil {
			return
		}
		s.boot, _ = parseBootTime(string(raw))
	})
	return s.boot
}
