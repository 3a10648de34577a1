package output

import "github.com/pranshuparmar/memtree/pkg/model"

// Find returns the node with the given pid in the delivered tree below root.
func Find(root *model.Node, id string) *model.Node {
	if root == nil {
		return nil
	}
	if root.ID == id && !root.IsRoot() {
		return root
	}
	for _, c := range root.Children {
		if n := Find(c, id); n != nil {
			return n
		}
	}
	return nil
}
