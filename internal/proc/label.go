package proc

import (
	"context"
	"strings"
)

// interpreters never make a useful label on their own.
var interpreters = map[string]bool{
	"python":  true,
	"python3": true,
	"node":    true,
	"sh":      true,
	"bash":    true,
}

// Label derives a display name from a process argument list. A --type=<v>
// argument anywhere wins; otherwise the first plain argument that is not the
// command itself or an interpreter is appended by its base name. With nothing
// usable the command name is returned unchanged.
func Label(args []string, comm string) string {
	if len(args) < 2 {
		return comm
	}

	candidate := ""
	for _, arg := range args[1:] {
		if v, ok := strings.CutPrefix(arg, "--type="); ok {
			return comm + " [" + v + "]"
		}
		if candidate != "" {
			continue
		}
		if arg == "" || strings.HasPrefix(arg, "-") || arg == comm || interpreters[arg] {
			continue
		}
		candidate = arg
	}

	if candidate == "" {
		return comm
	}
	return comm + " [" + baseName(candidate) + "]"
}

// baseName strips everything up to the last slash or backslash, so Windows
// command lines from gopsutil shorten the same way as Unix ones.
func baseName(arg string) string {
	trimmed := strings.TrimRight(arg, `/\`)
	if trimmed == "" {
		return arg
	}
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// ResolveLabel reads the argument list of pid and labels it. Any read error
// falls back to comm.
func ResolveLabel(ctx context.Context, src Source, pid int, comm string) string {
	args, err := src.Cmdline(ctx, pid)
	if err != nil {
		return comm
	}
	return Label(args, comm)
}
