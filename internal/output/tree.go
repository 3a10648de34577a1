package output

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	units "github.com/docker/go-units"

	"github.com/pranshuparmar/memtree/pkg/model"
)

var (
	colorResetTree   = "\033[0m"
	colorMagentaTree = "\033[35m"
	colorBoldTree    = "\033[2m"
	colorRedTree     = "\033[31m"
)

type TreeOptions struct {
	ColorEnabled bool
	// MaxDepth limits how many levels below the root are printed; 0 prints all.
	MaxDepth int
	// MinPercent hides nodes below this share of their parent.
	MinPercent float64
}

// SortedChildren returns the children of n, largest first.
func SortedChildren(n *model.Node) []*model.Node {
	kids := slices.Clone(n.Children)
	slices.SortStableFunc(kids, func(a, b *model.Node) int {
		if c := cmp.Compare(b.AggregateSize, a.AggregateSize); c != 0 {
			return c
		}
		return strings.Compare(a.Label, b.Label)
	})
	return kids
}

func PrintTree(w io.Writer, root *model.Node, opts TreeOptions) {
	if root == nil {
		return
	}
	printNode(w, root, 0, opts)
}

func printNode(w io.Writer, n *model.Node, depth int, opts TreeOptions) {
	colorReset := ""
	colorMagenta := ""
	colorBold := ""
	colorRed := ""
	if opts.ColorEnabled {
		colorReset = colorResetTree
		colorMagenta = colorMagentaTree
		colorBold = colorBoldTree
		colorRed = colorRedTree
	}

	prefix := strings.Repeat("  ", depth)
	if depth > 0 {
		prefix += colorMagenta + "└─ " + colorReset
	}

	id := ""
	if !n.IsRoot() {
		id = fmt.Sprintf(" (%spid %s%s)", colorBold, n.ID, colorReset)
	}
	marker := ""
	if n.State == model.StateError || n.State == model.StateChildError {
		marker = " " + colorRed + "!" + colorReset
	}
	fmt.Fprintf(w, "%s%s%s  %s  %.1f%%%s\n", prefix, n.Label, id, FormatBytes(n.AggregateSize), n.Percent, marker)

	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return
	}
	hidden := 0
	for _, c := range SortedChildren(n) {
		if c.Percent < opts.MinPercent {
			hidden++
			continue
		}
		printNode(w, c, depth+1, opts)
	}
	if hidden > 0 {
		fmt.Fprintf(w, "%s  %s… %d more%s\n", strings.Repeat("  ", depth), colorBold, hidden, colorReset)
	}
}

// FormatBytes renders a byte count with binary units.
func FormatBytes(b uint64) string {
	return units.BytesSize(float64(b))
}
