package proc

import "strings"

// Excluded reports whether s matches one of the configured exclusions. An
// entry containing a path separator is matched as a prefix of the executable
// path, anything else as the exact command name.
func Excluded(s Sample, exclusions []string) bool {
	for _, e := range exclusions {
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			if s.Exe != "" && (s.Exe == e || strings.HasPrefix(s.Exe, strings.TrimSuffix(e, "/")+"/")) {
				return true
			}
			continue
		}
		if s.Comm == e {
			return true
		}
	}
	return false
}
