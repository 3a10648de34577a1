package output

import (
	"fmt"
	"io"
	"time"

	"github.com/pranshuparmar/memtree/pkg/model"
)

var (
	colorResetSummary = "\033[0m"
	colorBoldSummary  = "\033[2m"
)

// RenderSummary prints a one line footer for the tree below root. totalMemory
// may be 0 when unknown.
func RenderSummary(w io.Writer, root *model.Node, totalMemory uint64, elapsed time.Duration, colorEnabled bool) {
	if root == nil {
		return
	}
	colorReset := ""
	colorBold := ""
	if colorEnabled {
		colorReset = colorResetSummary
		colorBold = colorBoldSummary
	}

	count := root.ElementCount
	if root.IsRoot() {
		count--
	}

	share := ""
	if totalMemory > 0 {
		share = fmt.Sprintf(" (%.1f%% of %s)", 100*float64(root.AggregateSize)/float64(totalMemory), FormatBytes(totalMemory))
	}
	fmt.Fprintf(w, "%s%d processes, %s resident%s in %s%s\n",
		colorBold, count, FormatBytes(root.AggregateSize), share, elapsed.Round(time.Millisecond), colorReset)
}
