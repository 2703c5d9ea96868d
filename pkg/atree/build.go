package atree

import (
	"fmt"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

// Construction guard defaults. Real desktop trees stay far below these; the
// guards exist to turn pathological or malicious input into ErrStructural
// instead of resource exhaustion.
const (
	// DefaultMaxDepth bounds the distance from root to any node.
	DefaultMaxDepth = 1024

	// DefaultMaxChildren bounds the fanout of a single node.
	DefaultMaxChildren = 65536

	// DefaultMaxNodes bounds the total node count of one tree.
	DefaultMaxNodes = 1 << 26
)

// buildConfig holds construction guard limits.
type buildConfig struct {
	maxDepth    int
	maxChildren int
	maxNodes    int
}

// Option adjusts a construction guard.
type Option func(*buildConfig)

// WithMaxDepth overrides the depth guard.
func WithMaxDepth(limit int) Option {
	return func(c *buildConfig) { c.maxDepth = limit }
}

// WithMaxChildren overrides the per-node fanout guard.
func WithMaxChildren(limit int) Option {
	return func(c *buildConfig) { c.maxChildren = limit }
}

// WithMaxNodes overrides the total node count guard.
func WithMaxNodes(limit int) Option {
	return func(c *buildConfig) { c.maxNodes = limit }
}

func newBuildConfig(opts []Option) buildConfig {
	cfg := buildConfig{
		maxDepth:    DefaultMaxDepth,
		maxChildren: DefaultMaxChildren,
		maxNodes:    DefaultMaxNodes,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// buildFrame is one pending step of the iterative ingestion walk.
type buildFrame struct {
	node   *snapshot.Node
	parent NodeID
	depth  int32
}

// Build constructs the plain-layout tree from a snapshot: one ingestion pass
// assigning dense pre-order indices, followed by the bottom-up summary pass.
// The returned tree is fully summarized and immutable; it is safe to share
// across goroutines for reading.
//
// Build fails with ErrStructural when the input is not a finite rooted tree
// within the configured guards, and with role.ErrUnknownRole when a role name
// is outside the closed enumeration.
func Build(root *snapshot.Node, opts ...Option) (*Tree, error) {
	t, err := ingest(root, newBuildConfig(opts))
	if err != nil {
		return nil, err
	}

	t.summarize()

	return t, nil
}

// BuildCounting constructs the counting-layout tree: everything Build does,
// plus per-node subtree role counts.
func BuildCounting(root *snapshot.Node, opts ...Option) (*CountTree, error) {
	t, err := ingest(root, newBuildConfig(opts))
	if err != nil {
		return nil, err
	}

	ct := &CountTree{Tree: *t}
	ct.summarize()
	ct.summarizeCounts()

	return ct, nil
}

// ingest runs the single construction pass: it walks the snapshot in
// pre-order with an explicit stack, assigns indices, resolves role names, and
// enforces the structural guards. Children are linked afterwards in one CSR
// fill, which preserves the input child order because a node's children are
// discovered in ascending index order.
func ingest(root *snapshot.Node, cfg buildConfig) (*Tree, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: no root node", ErrStructural)
	}

	t := &Tree{}

	seen := make(map[*snapshot.Node]struct{})
	stack := []buildFrame{{node: root, parent: NoNode, depth: 0}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id, err := t.ingestNode(frame, seen, cfg)
		if err != nil {
			return nil, err
		}

		// Push children in reverse so they pop in input order.
		for i := len(frame.node.Children) - 1; i >= 0; i-- {
			child := frame.node.Children[i]
			if child == nil {
				return nil, fmt.Errorf("%w: node %d has a null child", ErrStructural, id)
			}

			stack = append(stack, buildFrame{node: child, parent: id, depth: frame.depth + 1})
		}
	}

	t.linkChildren()

	return t, nil
}

// ingestNode validates one snapshot node against the guards and appends it to
// the arena, returning its new NodeID.
func (t *Tree) ingestNode(frame buildFrame, seen map[*snapshot.Node]struct{}, cfg buildConfig) (NodeID, error) {
	if _, dup := seen[frame.node]; dup {
		return NoNode, fmt.Errorf("%w: node %q reachable twice (cycle or shared subtree)",
			ErrStructural, frame.node.Role)
	}

	seen[frame.node] = struct{}{}

	if len(t.roles) >= cfg.maxNodes {
		return NoNode, fmt.Errorf("%w: more than %d nodes", ErrStructural, cfg.maxNodes)
	}

	if int(frame.depth) > cfg.maxDepth {
		return NoNode, fmt.Errorf("%w: depth %d exceeds limit %d", ErrStructural, frame.depth, cfg.maxDepth)
	}

	if len(frame.node.Children) > cfg.maxChildren {
		return NoNode, fmt.Errorf("%w: node %q has %d children, limit %d",
			ErrStructural, frame.node.Role, len(frame.node.Children), cfg.maxChildren)
	}

	r, err := role.FromName(frame.node.Role)
	if err != nil {
		return NoNode, fmt.Errorf("atree: node %d: %w", len(t.roles), err)
	}

	id := NodeID(len(t.roles))
	t.roles = append(t.roles, r)
	t.parents = append(t.parents, frame.parent)
	t.depths = append(t.depths, frame.depth)

	return id, nil
}

// linkChildren builds the CSR child index from the parent links: a counting
// pass, a prefix sum, and an in-order fill. Iterating nodes in ascending
// index order appends each child after all earlier siblings' subtrees, which
// is exactly the recorded input order.
func (t *Tree) linkChildren() {
	n := len(t.roles)
	t.childStart = make([]int32, n+1)

	for i := 1; i < n; i++ {
		t.childStart[t.parents[i]+1]++
	}

	for i := 1; i <= n; i++ {
		t.childStart[i] += t.childStart[i-1]
	}

	t.childIDs = make([]NodeID, n-1)
	fill := make([]int32, n)
	copy(fill, t.childStart[:n])

	for i := 1; i < n; i++ {
		p := t.parents[i]
		t.childIDs[fill[p]] = NodeID(i)
		fill[p]++
	}
}

// summarize computes every node's subtree role bitset and subtree size in one
// reverse sweep. Pre-order indexing guarantees a parent's index is smaller
// than all of its descendants', so walking indices downwards folds every node
// into its parent after the node itself is complete: a post-order pass
// without an explicit traversal.
func (t *Tree) summarize() {
	n := len(t.roles)
	t.subtree = make([]role.Set, n)
	t.sizes = make([]int32, n)

	for i := range n {
		t.subtree[i].Add(t.roles[i])
		t.sizes[i] = 1
	}

	for i := n - 1; i >= 1; i-- {
		p := t.parents[i]
		t.subtree[p].UnionWith(t.subtree[i])
		t.sizes[p] += t.sizes[i]
	}
}
