package atree

import (
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// CountTree is the counting-layout arena: the plain layout plus, per node, a
// table of how many descendants (including the node itself) carry each role.
// The extra memory buys O(1) whole-subtree counting from any node.
type CountTree struct {
	Tree

	counts []role.Counts
}

// summarizeCounts computes the per-node subtree role counts by the same
// reverse-sweep post-order scheme as the bitset summary. Each merge is linear
// in the number of distinct roles in the child's subtree, which amortizes to
// O(n) over the whole pass for realistic role distributions.
func (t *CountTree) summarizeCounts() {
	n := t.Len()
	t.counts = make([]role.Counts, n)

	for i := range n {
		t.counts[i] = role.CountsOf(t.roles[i], 1)
	}

	for i := n - 1; i >= 1; i-- {
		t.counts[t.parents[i]].Merge(t.counts[i])
	}
}

// Counts returns the subtree role count table for id. The returned table
// aliases the arena and must be treated as read-only.
func (t *CountTree) Counts(id NodeID) (role.Counts, error) {
	err := t.check(id)
	if err != nil {
		return role.Counts{}, err
	}

	return t.counts[id], nil
}

// HowMany returns the number of nodes in the whole tree whose role is r.
// The counting layout answers from the root's count table in O(log d) where
// d is the number of distinct roles, instead of scanning the arena.
func (t *CountTree) HowMany(r role.Role) int {
	return t.counts[0].Get(r)
}

// HowManyRoleset returns the same count as HowMany; in the counting layout
// both resolve through the root count table.
func (t *CountTree) HowManyRoleset(r role.Role) int {
	return t.counts[0].Get(r)
}

// HowManyIn returns the number of nodes with role r inside the subtree
// rooted at id, including id itself. Subtree-rooted counting is O(1)-ish for
// the same reason the whole-tree shortcut is: the counts are materialized on
// every node, not only the root.
func (t *CountTree) HowManyIn(id NodeID, r role.Role) (int, error) {
	err := t.check(id)
	if err != nil {
		return 0, err
	}

	return t.counts[id].Get(r), nil
}
