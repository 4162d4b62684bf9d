package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/nanopore-tools/h5audit/internal/hier"
)

// DefaultIndent is the per-level indentation of rendered trees.
const DefaultIndent = "    "

// Filter decides which leaves a rendering pass shows.
type Filter struct {
	Include func(name string) bool           // Leaf is shown when true
	Value   func(name string) (string, bool) // Optional suffix value; nil shows names only
}

// RenderTree writes the hierarchy depth-first in declaration order. Every
// group prints its header; leaves print only when f includes them.
func RenderTree(w io.Writer, tree *hier.Tree, f Filter, indent string) error {
	bw := bufio.NewWriter(w)
	err := tree.Walk(func(n hier.Node, depth int) error {
		prefix := strings.Repeat(indent, depth)
		if n.Kind == hier.GroupNode {
			_, err := bw.WriteString(prefix + n.Name + ":\n")
			return err
		}
		if f.Include == nil || !f.Include(n.Name) {
			return nil
		}
		line := prefix + n.Name
		if f.Value != nil {
			if v, ok := f.Value(n.Name); ok {
				line += ": " + v
			}
		}
		_, err := bw.WriteString(line + "\n")
		return err
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}
