// Package hier builds the canonical group/leaf hierarchy of a dump report.
package hier

// NodeKind distinguishes groups from leaf references.
type NodeKind int

const (
	GroupNode NodeKind = iota
	LeafNode
)

// RootIndex is the arena index of the implicit file-root group.
const RootIndex = 0

// Node is one entry of the tree arena.
type Node struct {
	Kind     NodeKind
	Name     string
	Parent   int   // Arena index of the enclosing group; -1 for the root
	Children []int // Arena indices in declaration order
}

// Tree is an arena of nodes addressed by index. Index 0 is the root group.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only the root group.
func NewTree() *Tree {
	return &Tree{
		nodes: []Node{{Kind: GroupNode, Name: "/", Parent: -1}},
	}
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) add(parent int, kind NodeKind, name string) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{Kind: kind, Name: name, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	return idx
}

// Visitor is called for every node below the root. Depth is 0 for the
// root's direct children. Returning a non-nil error stops the walk.
type Visitor func(n Node, depth int) error

// Walk visits the tree depth-first in declaration order, excluding the root.
func (t *Tree) Walk(fn Visitor) error {
	return t.walk(RootIndex, 0, fn)
}

func (t *Tree) walk(idx, depth int, fn Visitor) error {
	for _, child := range t.nodes[idx].Children {
		n := t.nodes[child]
		if err := fn(n, depth); err != nil {
			return err
		}
		if n.Kind == GroupNode {
			if err := t.walk(child, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stats counts groups and leaf references below the root.
func (t *Tree) Stats() (groups, leaves int) {
	for _, n := range t.nodes[1:] {
		if n.Kind == GroupNode {
			groups++
		} else {
			leaves++
		}
	}
	return groups, leaves
}
