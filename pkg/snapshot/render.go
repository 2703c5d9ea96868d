package snapshot

import (
	"fmt"
	"io"
)

// Box-drawing characters for the tree renderer.
const (
	branchConnector = "├── "
	lastConnector   = "└── "
	verticalPrefix  = "│   "
	emptyPrefix     = "    "
)

// Render pretty-prints the snapshot as an indented tree, one node per line,
// showing each node's role and child count. Mirrors the layout of the
// classic `tree` utility.
func Render(w io.Writer, n *Node) error {
	if n == nil {
		return nil
	}

	_, err := fmt.Fprintf(w, "%s (%d)\n", n.Role, len(n.Children))
	if err != nil {
		return fmt.Errorf("snapshot: render: %w", err)
	}

	return renderChildren(w, n, "")
}

func renderChildren(w io.Writer, n *Node, prefix string) error {
	for i, child := range n.Children {
		connector, childPrefix := branchConnector, verticalPrefix
		if i == len(n.Children)-1 {
			connector, childPrefix = lastConnector, emptyPrefix
		}

		_, err := fmt.Fprintf(w, "%s%s%s (%d)\n", prefix, connector, child.Role, len(child.Children))
		if err != nil {
			return fmt.Errorf("snapshot: render: %w", err)
		}

		err = renderChildren(w, child, prefix+childPrefix)
		if err != nil {
			return err
		}
	}

	return nil
}
