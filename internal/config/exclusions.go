package config

import (
	"slices"
	"sync"

	"github.com/pranshuparmar/memtree/internal/logging"
)

var log = logging.New("config")

// ExclusionSource supplies the processes a scan should leave out. It is
// consulted once per scan, when the scanner resets.
type ExclusionSource interface {
	Exclusions() []string
}

// StaticExclusions is a fixed exclusion list.
type StaticExclusions []string

func (s StaticExclusions) Exclusions() []string {
	return slices.Clone(s)
}

// FileExclusions re-reads the exclusion list from a config file each time it
// is asked, keeping the last good list when the file turns unreadable.
type FileExclusions struct {
	Path string

	mu   sync.Mutex
	last []string
}

func NewFileExclusions(path string, initial []string) *FileExclusions {
	return &FileExclusions{Path: path, last: slices.Clone(initial)}
}

func (f *FileExclusions) Exclusions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg, err := Load(f.Path)
	if err != nil {
		log.Infoln("keeping previous exclusions:", err)
		return slices.Clone(f.last)
	}
	f.last = cfg.Exclude
	return slices.Clone(f.last)
}

// WithExtra appends a fixed list to whatever src returns.
func WithExtra(src ExclusionSource, extra []string) ExclusionSource {
	if len(extra) == 0 {
		return src
	}
	return extraExclusions{src: src, extra: StaticExclusions(slices.Clone(extra))}
}

type extraExclusions struct {
	src   ExclusionSource
	extra StaticExclusions
}

func (e extraExclusions) Exclusions() []string {
	var out []string
	if e.src != nil {
		out = e.src.Exclusions()
	}
	return append(out, e.extra.Exclusions()...)
}
