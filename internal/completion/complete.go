// Package completion produces shell completion candidates for flag values.
package completion

import (
	"context"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pranshuparmar/memtree/internal/proc"
)

// PIDs returns the running pids, leaving out memtree and the shell that is
// asking.
func PIDs(ctx context.Context, src proc.Source) []string {
	all, err := src.PIDs(ctx)
	if err != nil {
		return nil
	}

	selfPid := os.Getpid()
	parentPid := os.Getppid()
	pids := make([]int, 0, len(all))
	for _, pid := range all {
		// Exclude self and parent
		if pid == selfPid || pid == parentPid {
			continue
		}
		pids = append(pids, pid)
	}
	return uniqueSortedInts(pids)
}

// ProcessNames returns the unique command names of running processes.
func ProcessNames(ctx context.Context, src proc.Source) []string {
	pids, err := src.PIDs(ctx)
	if err != nil {
		return nil
	}

	selfPid := os.Getpid()
	var names []string
	for _, pid := range pids {
		if pid == selfPid {
			continue
		}
		s, err := src.Record(ctx, pid)
		if err != nil {
			continue
		}
		if s.Comm != "memtree" {
			names = append(names, s.Comm)
		}
	}
	return uniqueSorted(names)
}

// shellMetaChars contains characters that are unsafe in shell completion contexts.
// Process names containing these characters are filtered out to prevent command injection.
const shellMetaChars = " \t\n$`\\\"';&|<>(){}[]!*?~"

func isShellSafe(s string) bool {
	return !strings.ContainsAny(s, shellMetaChars)
}

// uniqueSorted returns a sorted slice with duplicates removed
func uniqueSorted(items []string) []string {
	seen := make(map[string]bool)
	var result []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" && !seen[item] && isShellSafe(item) {
			seen[item] = true
			result = append(result, item)
		}
	}
	sort.Strings(result)
	return result
}

// uniqueSortedInts returns a sorted slice of ints as strings with duplicates removed
func uniqueSortedInts(items []int) []string {
	seen := make(map[int]bool)
	var nums []int
	for _, item := range items {
		if item > 0 && !seen[item] {
			seen[item] = true
			nums = append(nums, item)
		}
	}
	sort.Ints(nums)
	result := make([]string, len(nums))
	for i, n := range nums {
		result[i] = strconv.Itoa(n)
	}
	return result
}
