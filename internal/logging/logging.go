// Package logging hands out named component loggers. Output stays silent
// until Enable is called so it never interleaves with command output.
package logging

import (
	"sync/atomic"

	"github.com/Moonlight-Companies/gologger/coloransi"
	"github.com/Moonlight-Companies/gologger/logger"
)

var enabled atomic.Bool

// Enable turns on log output for every component logger.
func Enable(on bool) {
	enabled.Store(on)
}

type Logger struct {
	log *logger.Logger
}

// New returns a logger whose lines are prefixed with a coloured name.
func New(name string) *Logger {
	return &Logger{log: logger.NewLogger(coloransi.Color(coloransi.ColorPurple, coloransi.ColorOrange, name))}
}

func (l *Logger) Infoln(v ...interface{}) {
	if enabled.Load() {
		l.log.Infoln(v...)
	}
}

func (l *Logger) Debugln(v ...interface{}) {
	if enabled.Load() {
		l.log.Debugln(v...)
	}
}
