package scan

import (
	"slices"
	"strconv"

	"github.com/pranshuparmar/memtree/internal/proc"
	"github.com/pranshuparmar/memtree/pkg/model"
)

// tree is the worker-private view of one scan pass. Adjacency lives here and
// not in Node.Children, which belongs to the consumer.
type tree struct {
	root     *model.Node
	children map[*model.Node][]*model.Node
}

// link builds one node per sample and attaches it to the node of its parent
// pid. Processes whose parent is unknown, or that claim to be their own
// parent, hang off the synthetic root.
func link(samples []proc.Sample) *tree {
	t := &tree{
		root: &model.Node{
			Label: model.RootLabel,
			Kind:  model.KindRoot,
			State: model.StateScanning,
		},
		children: make(map[*model.Node][]*model.Node, len(samples)+1),
	}

	ordered := slices.Clone(samples)
	slices.SortFunc(ordered, func(a, b proc.Sample) int { return a.PID - b.PID })

	byPID := make(map[int]*model.Node, len(ordered))
	for _, s := range ordered {
		byPID[s.PID] = &model.Node{
			ID:      strconv.Itoa(s.PID),
			Label:   s.Comm,
			Kind:    model.KindProcess,
			OwnSize: s.RSS,
			ModTime: s.Started,
			State:   model.StateScanning,
		}
	}

	for _, s := range ordered {
		n := byPID[s.PID]
		parent, ok := byPID[s.PPID]
		if !ok || s.PPID == s.PID {
			parent = t.root
		}
		n.Parent = parent
	}

	for _, s := range ordered {
		n := byPID[s.PID]
		if !reachesRoot(n) {
			n.Parent = t.root // loop protection
		}
		t.children[n.Parent] = append(t.children[n.Parent], n)
	}
	return t
}

func reachesRoot(n *model.Node) bool {
	seen := make(map[*model.Node]bool)
	for cur := n; cur != nil; cur = cur.Parent {
		if seen[cur] {
			return false
		}
		seen[cur] = true
		if cur.IsRoot() {
			return true
		}
	}
	return false
}

// aggregate folds every subtree into its root, children first, then assigns
// percentages and terminal states from the top down.
func aggregate(t *tree) {
	accumulate(t, t.root)
	finalize(t, t.root)
}

func accumulate(t *tree, n *model.Node) {
	n.AggregateSize = n.OwnSize
	n.ElementCount = 1
	n.MaxDepth = 0

	for _, c := range t.children[n] {
		accumulate(t, c)

		n.AggregateSize += c.AggregateSize
		n.ElementCount += c.ElementCount
		n.MaxDepth = max(n.MaxDepth, c.MaxDepth+1)
		n.DescendantErr = n.DescendantErr || c.DescendantErr || c.Err != nil
		if c.ModTime.After(n.ModTime) {
			n.ModTime = c.ModTime
		}
	}
}

func finalize(t *tree, n *model.Node) {
	switch {
	case n.Parent == nil:
		n.Percent = 100
	case n.Parent.AggregateSize > 0:
		n.Percent = 100 * float64(n.AggregateSize) / float64(n.Parent.AggregateSize)
	default:
		n.Percent = 0
	}

	switch {
	case n.Err != nil:
		n.State = model.StateError
	case n.DescendantErr:
		n.State = model.StateChildError
	default:
		n.State = model.StateDone
	}

	for _, c := range t.children[n] {
		finalize(t, c)
	}
}

// postOrder lists every node with each child ahead of its parent, ending
// with the root.
func postOrder(t *tree) []*model.Node {
	out := make([]*model.Node, 0, len(t.children)+1)
	var walk func(n *model.Node)
	walk = func(n *model.Node) {
		for _, c := range t.children[n] {
			walk(c)
		}
		out = append(out, n)
	}
	walk(t.root)
	return out
}
