package output

import (
	"encoding/json"
	"time"

	"github.com/pranshuparmar/memtree/pkg/model"
)

type jsonNode struct {
	PID           string      `json:"pid,omitempty"`
	Label         string      `json:"label"`
	Kind          string      `json:"kind"`
	OwnSize       uint64      `json:"own_bytes"`
	AggregateSize uint64      `json:"total_bytes"`
	Elements      int         `json:"elements"`
	Depth         int         `json:"depth"`
	Percent       float64     `json:"percent"`
	State         string      `json:"state"`
	Newest        *time.Time  `json:"newest_start,omitempty"`
	Children      []*jsonNode `json:"children,omitempty"`
}

// ToJSON dumps the tree below root down to maxDepth levels (0 for all).
func ToJSON(root *model.Node, maxDepth int) (string, error) {
	data, err := json.MarshalIndent(toJSONNode(root, 0, maxDepth), "", "  ")
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

func toJSONNode(n *model.Node, depth, maxDepth int) *jsonNode {
	if n == nil {
		return nil
	}
	j := &jsonNode{
		PID:           n.ID,
		Label:         n.Label,
		Kind:          n.Kind.String(),
		OwnSize:       n.OwnSize,
		AggregateSize: n.AggregateSize,
		Elements:      n.ElementCount,
		Depth:         n.MaxDepth,
		Percent:       n.Percent,
		State:         n.State.String(),
	}
	if !n.ModTime.IsZero() {
		t := n.ModTime.UTC()
		j.Newest = &t
	}
	if maxDepth > 0 && depth >= maxDepth {
		return j
	}
	for _, c := range SortedChildren(n) {
		j.Children = append(j.Children, toJSONNode(c, depth+1, maxDepth))
	}
	return j
}
