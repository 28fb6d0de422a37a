package picker

import "mediabrowse/internal/strapi"

// RootFolderID stands in for the library root in tree nodes; real folder IDs
// are positive.
const RootFolderID = 0

// FlatNode is one row of the depth-first flattened folder tree, as shown by
// the destination picker.
type FlatNode struct {
	ID          int
	Label       string
	Path        string
	Parent      int
	Depth       int
	HasChildren bool
}

// FlattenStructure wraps the server's folder structure under a synthetic
// root node and flattens it depth-first.
func FlattenStructure(label string, nodes []strapi.FolderNode) []FlatNode {
	flat := []FlatNode{{ID: RootFolderID, Label: label, Parent: -1, Depth: 0, HasChildren: len(nodes) > 0}}
	return flattenInto(flat, nodes, RootFolderID, 1)
}

func flattenInto(acc []FlatNode, nodes []strapi.FolderNode, parent, depth int) []FlatNode {
	for _, n := range nodes {
		acc = append(acc, FlatNode{
			ID:          n.ID,
			Label:       n.Name,
			Parent:      parent,
			Depth:       depth,
			HasChildren: len(n.Children) > 0,
		})
		acc = flattenInto(acc, n.Children, n.ID, depth+1)
	}
	return acc
}

// ValuesToClose returns value and all of its descendants, so excluding a
// node also excludes everything beneath it.
func ValuesToClose(flat []FlatNode, value int) []int {
	closed := []int{value}
	stack := []int{value}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range flat {
			if n.Parent == cur {
				closed = append(closed, n.ID)
				stack = append(stack, n.ID)
			}
		}
	}
	return closed
}

// FindNode looks a node up by ID in the flattened tree.
func FindNode(flat []FlatNode, id int) (FlatNode, bool) {
	for _, n := range flat {
		if n.ID == id {
			return n, true
		}
	}
	return FlatNode{}, false
}

// Subtree reports whether candidate is id itself or one of its descendants.
// Used to forbid moving a folder into itself.
func Subtree(flat []FlatNode, id, candidate int) bool {
	for _, v := range ValuesToClose(flat, id) {
		if v == candidate {
			return true
		}
	}
	return false
}
