package atree

import (
	"iter"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Sequential queries. All of them are read-only and rely on the arena index
// order being pre-order: a linear index scan visits nodes in reading order,
// and the smallest matching index is the first match.

// Leaves returns a lazy, restartable sequence of all leaf nodes in reading
// order.
func (t *Tree) Leaves() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		for i := range t.roles {
			id := NodeID(i)
			if t.isLeaf(id) && !yield(id) {
				return
			}
		}
	}
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	n := 0
	for range t.Leaves() {
		n++
	}

	return n
}

// HowMany returns the number of nodes whose own role is r, by a full scan of
// the arena.
func (t *Tree) HowMany(r role.Role) int {
	n := 0

	for _, own := range t.roles {
		if own == r {
			n++
		}
	}

	return n
}

// HowManyRoleset returns the same count as HowMany but descends only into
// subtrees whose summarized bitset contains r. Sparse roles make this far
// sub-linear; the worst case remains a full traversal.
func (t *Tree) HowManyRoleset(r role.Role) int {
	if !t.subtree[0].Contains(r) {
		return 0
	}

	return t.countPruned(0, r)
}

func (t *Tree) countPruned(id NodeID, r role.Role) int {
	n := 0
	if t.roles[id] == r {
		n = 1
	}

	for _, child := range t.kids(id) {
		if t.subtree[child].Contains(r) {
			n += t.countPruned(child, r)
		}
	}

	return n
}

// MaxDepth returns the greatest number of edges from the root to any node.
func (t *Tree) MaxDepth() int {
	if t.Len() == 0 {
		return 0
	}

	type frame struct {
		id    NodeID
		depth int32
	}

	maxDepth := int32(0)
	stack := make([]frame, 0, stackInitCap)
	stack = append(stack, frame{id: 0, depth: 0})

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}

		for _, child := range t.kids(cur.id) {
			stack = append(stack, frame{id: child, depth: cur.depth + 1})
		}
	}

	return int(maxDepth)
}

// UniqueRoles returns the set of roles present anywhere in the tree, by
// scanning every node's own role.
func (t *Tree) UniqueRoles() role.Set {
	var s role.Set

	for _, r := range t.roles {
		s.Add(r)
	}

	return s
}

// UniqueRolesRoleset returns the same set as UniqueRoles from the root's
// summarized bitset, in time bounded by the bitset width rather than the
// node count.
func (t *Tree) UniqueRolesRoleset() role.Set {
	return t.subtree[0]
}

// FindFirst returns the first node in reading order whose role is r. The
// scan is unpruned but short-circuits on the first match.
func (t *Tree) FindFirst(r role.Role) (NodeID, bool) {
	for i, own := range t.roles {
		if own == r {
			return NodeID(i), true
		}
	}

	return NoNode, false
}

// FindFirstRoleset returns the same node as FindFirst but skips every
// subtree whose summarized bitset lacks r: if the bit is clear no descendant
// can match.
func (t *Tree) FindFirstRoleset(r role.Role) (NodeID, bool) {
	if !t.subtree[0].Contains(r) {
		return NoNode, false
	}

	return t.findPruned(0, r)
}

func (t *Tree) findPruned(id NodeID, r role.Role) (NodeID, bool) {
	if t.roles[id] == r {
		return id, true
	}

	for _, child := range t.kids(id) {
		if !t.subtree[child].Contains(r) {
			continue
		}

		if found, ok := t.findPruned(child, r); ok {
			return found, true
		}
	}

	return NoNode, false
}
