package model

import "time"

type NodeKind int

const (
	KindProcess NodeKind = iota
	KindRoot
)

func (k NodeKind) String() string {
	if k == KindRoot {
		return "root"
	}
	return "process"
}

type NodeState int

const (
	StateScanning NodeState = iota
	StateError
	StateChildError
	StateDone
)

func (s NodeState) String() string {
	switch s {
	case StateScanning:
		return "scanning"
	case StateError:
		return "error"
	case StateChildError:
		return "child-error"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// RootLabel is the label of the synthetic node that parents every process
// whose parent is not part of the scan.
const RootLabel = "system processes"

// Node is one entry of a scanned process tree.
//
// Parent is a non-owning back-reference. Children is left empty by the
// scanner and filled in by the consumer as nodes are delivered.
type Node struct {
	Parent   *Node
	Children []*Node

	ID    string
	Label string
	Kind  NodeKind

	OwnSize       uint64
	AggregateSize uint64
	ElementCount  int
	MaxDepth      int
	Percent       float64

	// ModTime starts as the process start time and is raised to the newest
	// start time found in the subtree.
	ModTime time.Time

	Err           error
	DescendantErr bool
	State         NodeState
}

func (n *Node) IsRoot() bool {
	return n.Kind == KindRoot
}

// Progress is a snapshot of the running counters of a scan in flight.
type Progress struct {
	TotalSize uint64
	Elements  int
}
