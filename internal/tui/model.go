// Package tui shows scan progress in the terminal while driving the scan
// controller from the bubbletea event loop.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pranshuparmar/memtree/internal/scan"
)

type Model struct {
	ctrl     *scan.Controller
	interval time.Duration
	spinner  spinner.Model
	keys     KeyMap

	started   time.Time
	cancelled bool
	done      bool
}

// New wraps a controller whose scan has already been started.
func New(ctrl *scan.Controller, interval time.Duration) Model {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
	return Model{
		ctrl:     ctrl,
		interval: interval,
		spinner:  s,
		keys:     DefaultKeyMap(),
		started:  time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, drainCmd(m.interval))
}

// Cancelled reports whether the user aborted the scan.
func (m Model) Cancelled() bool {
	return m.cancelled
}

func drainCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return drainMsg(t)
	})
}
