package atree

import (
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// stackInitCap sizes the auxiliary traversal stack for typical tree depths
// so the search loop allocates once up front and never again.
const stackInitCap = 32

// FindFirstStack returns the same node as FindFirstRoleset for every input,
// but traverses with an explicit index stack instead of the call stack: no
// recursion, no allocation inside the loop. The method is strictly
// sequential by construction and deliberately has no parallel counterpart.
func (t *Tree) FindFirstStack(r role.Role) (NodeID, bool) {
	if !t.subtree[0].Contains(r) {
		return NoNode, false
	}

	stack := make([]NodeID, 0, stackInitCap)
	stack = append(stack, 0)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if t.roles[id] == r {
			return id, true
		}

		// Push children in reverse so the earliest sibling pops first,
		// preserving reading order; prune the ones whose bitset lacks r.
		kids := t.kids(id)
		for i := len(kids) - 1; i >= 0; i-- {
			if t.subtree[kids[i]].Contains(r) {
				stack = append(stack, kids[i])
			}
		}
	}

	return NoNode, false
}
