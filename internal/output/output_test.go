package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pranshuparmar/memtree/pkg/model"
)

// sampleTree builds root -> init -> {big, small} by hand.
func sampleTree() *model.Node {
	root := &model.Node{Label: model.RootLabel, Kind: model.KindRoot, AggregateSize: 4096 * 4, ElementCount: 4, Percent: 100, State: model.StateDone}
	initNode := &model.Node{Parent: root, ID: "1", Label: "init", OwnSize: 4096, AggregateSize: 4096 * 4, ElementCount: 3, Percent: 100, State: model.StateChildError}
	big := &model.Node{Parent: initNode, ID: "20", Label: "big", OwnSize: 4096 * 2, AggregateSize: 4096 * 2, ElementCount: 1, Percent: 50, State: model.StateDone}
	small := &model.Node{Parent: initNode, ID: "10", Label: "small", OwnSize: 4096, AggregateSize: 4096, ElementCount: 1, Percent: 25, State: model.StateError, ModTime: time.Unix(1700000000, 0)}
	root.Children = []*model.Node{initNode}
	initNode.Children = []*model.Node{small, big}
	return root
}

func TestSortedChildren(t *testing.T) {
	root := sampleTree()
	kids := SortedChildren(root.Children[0])
	if kids[0].Label != "big" || kids[1].Label != "small" {
		t.Errorf("SortedChildren() = [%s %s], want [big small]", kids[0].Label, kids[1].Label)
	}
	if root.Children[0].Children[0].Label != "small" {
		t.Error("SortedChildren() reordered the node in place")
	}
}

func TestPrintTree(t *testing.T) {
	tests := []struct {
		name     string
		opts     TreeOptions
		contains []string
		absent   []string
	}{
		{
			name:     "full",
			opts:     TreeOptions{},
			contains: []string{"system processes", "  └─ init (pid 1)", "    └─ big (pid 20)  8KiB  50.0%", "small (pid 10)  4KiB  25.0% !"},
		},
		{
			name:     "depth limited",
			opts:     TreeOptions{MaxDepth: 1},
			contains: []string{"init (pid 1)"},
			absent:   []string{"big", "small"},
		},
		{
			name:     "min percent",
			opts:     TreeOptions{MinPercent: 30},
			contains: []string{"big (pid 20)", "… 1 more"},
			absent:   []string{"small"},
		},
		{
			name:     "color",
			opts:     TreeOptions{ColorEnabled: true},
			contains: []string{colorMagentaTree + "└─ " + colorResetTree},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintTree(&buf, sampleTree(), tt.opts)
			got := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("PrintTree() missing %q in:\n%s", want, got)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("PrintTree() unexpectedly contains %q in:\n%s", bad, got)
				}
			}
		})
	}

	var buf bytes.Buffer
	PrintTree(&buf, nil, TreeOptions{})
	if buf.Len() != 0 {
		t.Errorf("PrintTree(nil) wrote %q", buf.String())
	}
}

func TestToJSON(t *testing.T) {
	got, err := ToJSON(sampleTree(), 0)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var parsed struct {
		Label    string `json:"label"`
		Kind     string `json:"kind"`
		Children []struct {
			PID      string `json:"pid"`
			Children []struct {
				Label  string `json:"label"`
				State  string `json:"state"`
				Newest string `json:"newest_start"`
			} `json:"children"`
		} `json:"children"`
	}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if parsed.Kind != "root" || parsed.Label != model.RootLabel {
		t.Errorf("root = %s/%s", parsed.Kind, parsed.Label)
	}
	if len(parsed.Children) != 1 || parsed.Children[0].PID != "1" {
		t.Fatalf("children = %+v", parsed.Children)
	}
	leaves := parsed.Children[0].Children
	if len(leaves) != 2 || leaves[0].Label != "big" || leaves[1].State != "error" {
		t.Errorf("leaves = %+v", leaves)
	}
	if leaves[1].Newest != "2023-11-14T22:13:20Z" {
		t.Errorf("newest_start = %q", leaves[1].Newest)
	}

	shallow, err := ToJSON(sampleTree(), 1)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	if strings.Contains(shallow, "big") {
		t.Error("ToJSON() with depth 1 included grandchildren")
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleTree(), 4096*16, 1234*time.Millisecond, false)
	want := "3 processes, 16KiB resident (25.0% of 64KiB) in 1.234s\n"
	if buf.String() != want {
		t.Errorf("RenderSummary() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	RenderSummary(&buf, sampleTree(), 0, time.Second, false)
	if strings.Contains(buf.String(), "% of") {
		t.Errorf("RenderSummary() without total memory = %q", buf.String())
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{4096, "4KiB"},
		{1536 * 1024, "1.5MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	root := sampleTree()
	if n := Find(root, "10"); n == nil || n.Label != "small" {
		t.Errorf("Find(10) = %v, want small", n)
	}
	if n := Find(root, "404"); n != nil {
		t.Errorf("Find(404) = %v, want nil", n)
	}
	if n := Find(root, ""); n != nil {
		t.Errorf("Find(\"\") matched the synthetic root")
	}
}
