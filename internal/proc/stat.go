package proc

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clockTicks is USER_HZ, which is 100 on every mainstream Linux build.
const clockTicks = 100

const defaultPageSize = 4096

type statFields struct {
	pid        int
	comm       string
	ppid       int
	startTicks uint64
}

// parseStat parses the contents of /proc/<pid>/stat. The command name is
// delimited by the first "(" and the last ")" since it may itself contain
// parentheses or spaces.
func parseStat(raw string) (statFields, error) {
	open := strings.Index(raw, "(")
	close := strings.LastIndex(raw, ")")
	if open <= 0 || close < open {
		return statFields{}, fmt.Errorf("malformed stat line")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(raw[:open]))
	if err != nil {
		return statFields{}, fmt.Errorf("stat pid: %w", err)
	}

	if close+2 > len(raw) {
		return statFields{}, fmt.Errorf("stat line truncated")
	}
	fields := strings.Fields(raw[close+2:])
	if len(fields) < 2 {
		return statFields{}, fmt.Errorf("stat line truncated")
	}

	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return statFields{}, fmt.Errorf("stat ppid: %w", err)
	}

	st := statFields{
		pid:  pid,
		comm: raw[open+1 : close],
		ppid: ppid,
	}
	// starttime is field 22 of the line, the 20th after the command name
	if len(fields) > 19 {
		if ticks, err := strconv.ParseUint(fields[19], 10, 64); err == nil {
			st.startTicks = ticks
		}
	}
	return st, nil
}

// parseStatm returns the resident set size in bytes from /proc/<pid>/statm.
func parseStatm(raw string, pageSize int) (uint64, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return 0, fmt.Errorf("malformed statm line")
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("statm resident: %w", err)
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return pages * uint64(pageSize), nil
}

// parseBootTime extracts the btime line of /proc/stat.
func parseBootTime(raw string) (time.Time, error) {
	for line := range strings.Lines(raw) {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[0] == "btime" {
			secs, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return time.Time{}, fmt.Errorf("btime: %w", err)
			}
			return time.Unix(secs, 0), nil
		}
	}
	return time.Time{}, fmt.Errorf("btime not found")
}

func startTime(boot time.Time, ticks uint64) time.Time {
	if boot.IsZero() {
		return time.Time{}
	}
	return boot.Add(time.Duration(ticks) * time.Second / clockTicks)
}

// splitCmdline splits the NUL separated contents of /proc/<pid>/cmdline.
func splitCmdline(raw []byte) []string {
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return nil
	}
	parts := bytes.Split(raw, []byte{0})
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = string(p)
	}
	return args
}
