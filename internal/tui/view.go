package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pranshuparmar/memtree/internal/output"
)

func (m Model) View() string {
	if m.done {
		return ""
	}

	p := m.ctrl.Progress()
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(statusStyle.Render("Scanning processes"))
	b.WriteString(" ")
	b.WriteString(countStyle.Render(fmt.Sprintf("%d nodes · %s", p.Elements, output.FormatBytes(p.TotalSize))))
	b.WriteString(" ")
	b.WriteString(statusDescStyle.Render(time.Since(m.started).Round(100 * time.Millisecond).String()))
	b.WriteString("\n")

	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		b.WriteString(helpStyle.Render(statusKeyStyle.Render(h.Key) + " " + statusDescStyle.Render(h.Desc)))
	}
	b.WriteString("\n")
	return b.String()
}
