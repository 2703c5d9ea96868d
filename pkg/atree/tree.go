// Package atree stores one accessibility tree in an index-addressed arena
// and answers role-aware structural navigation queries over it.
//
// Node identity is a dense pre-order index into the arena: a node always
// precedes its descendants and an earlier sibling's whole subtree precedes a
// later sibling's. That single property carries most of the package: "first
// match in reading order" is simply the smallest matching index, a subtree is
// the contiguous index range [id, id+size), and parallel queries can chunk
// the arena directly.
//
// A Tree is built and summarized once, then never mutated, so any number of
// goroutines may query it concurrently without synchronization.
package atree

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// NodeID addresses one node inside its owning Tree. IDs are dense pre-order
// positions, stable for the lifetime of the tree and never reused.
type NodeID int32

// NoNode is the out-of-band NodeID returned by lookups with no result.
const NoNode NodeID = -1

// Sentinel errors for tree construction and navigation.
var (
	// ErrStructural reports malformed input: a shared or cyclic node, an
	// empty document, or a guard limit exceeded during construction.
	ErrStructural = errors.New("atree: malformed input tree")

	// ErrIndexOutOfRange reports a NodeID that does not belong to the tree.
	ErrIndexOutOfRange = errors.New("atree: node index out of range")
)

// Tree is the plain-layout arena: per node it stores the role, the parent
// link, the ordered child list (in CSR form shared across the arena), and the
// summarized subtree role bitset. Subtree sizes and depths are recorded at
// build time for partitioning and depth queries.
type Tree struct {
	roles      []role.Role
	parents    []NodeID
	childStart []int32 // len(roles)+1; children of i are childIDs[childStart[i]:childStart[i+1]].
	childIDs   []NodeID
	subtree    []role.Set // Roles present in the subtree rooted at i, including i.
	sizes      []int32    // Node count of the subtree rooted at i, including i.
	depths     []int32    // Edges from the root to i.
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.roles)
}

// Root returns the root NodeID.
func (t *Tree) Root() NodeID {
	return 0
}

// check validates that id belongs to the tree.
func (t *Tree) check(id NodeID) error {
	if id < 0 || int(id) >= len(t.roles) {
		return fmt.Errorf("%w: %d (tree has %d nodes)", ErrIndexOutOfRange, id, len(t.roles))
	}

	return nil
}

// Role returns the node's own role.
func (t *Tree) Role(id NodeID) (role.Role, error) {
	err := t.check(id)
	if err != nil {
		return role.Invalid, err
	}

	return t.roles[id], nil
}

// Parent returns the node's parent, or NoNode for the root.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	err := t.check(id)
	if err != nil {
		return NoNode, err
	}

	return t.parents[id], nil
}

// Children returns the node's children in navigation order. The returned
// slice aliases the arena and must not be modified.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	err := t.check(id)
	if err != nil {
		return nil, err
	}

	return t.kids(id), nil
}

// Subtree returns the summarized role bitset of the subtree rooted at id:
// bit r is set iff id or some descendant of id has role r.
func (t *Tree) Subtree(id NodeID) (role.Set, error) {
	err := t.check(id)
	if err != nil {
		return role.Set{}, err
	}

	return t.subtree[id], nil
}

// SubtreeSize returns the number of nodes in the subtree rooted at id,
// including id itself.
func (t *Tree) SubtreeSize(id NodeID) (int, error) {
	err := t.check(id)
	if err != nil {
		return 0, err
	}

	return int(t.sizes[id]), nil
}

// Depth returns the number of edges from the root to id.
func (t *Tree) Depth(id NodeID) (int, error) {
	err := t.check(id)
	if err != nil {
		return 0, err
	}

	return int(t.depths[id]), nil
}

// kids is the unchecked child accessor used on hot paths.
func (t *Tree) kids(id NodeID) []NodeID {
	return t.childIDs[t.childStart[id]:t.childStart[id+1]]
}

// isLeaf reports whether id has no children.
func (t *Tree) isLeaf(id NodeID) bool {
	return t.childStart[id] == t.childStart[id+1]
}
