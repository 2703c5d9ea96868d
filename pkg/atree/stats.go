package atree

import (
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// RoleTally is one per-role occurrence count in a Stats report.
type RoleTally struct {
	Role  role.Role
	Count int
}

// Stats is the read surface exposed to reporting consumers. Everything in it
// is derived from the public query set; nothing is stored beyond the arena.
type Stats struct {
	Nodes       int
	Leaves      int
	MaxDepth    int
	MaxChildren int
	UniqueRoles []role.Role
	PerRole     []RoleTally
}

// Stats summarizes the tree for reporting consumers.
func (t *Tree) Stats() Stats {
	var tally [role.Count]int

	for _, r := range t.roles {
		tally[r]++
	}

	perRole := make([]RoleTally, 0, t.UniqueRolesRoleset().Len())

	for r, n := range tally {
		if n > 0 {
			perRole = append(perRole, RoleTally{Role: role.Role(r), Count: n})
		}
	}

	maxChildren := 0

	for i := range t.roles {
		if fanout := len(t.kids(NodeID(i))); fanout > maxChildren {
			maxChildren = fanout
		}
	}

	return Stats{
		Nodes:       t.Len(),
		Leaves:      t.LeafCount(),
		MaxDepth:    t.MaxDepth(),
		MaxChildren: maxChildren,
		UniqueRoles: t.UniqueRolesRoleset().Roles(),
		PerRole:     perRole,
	}
}
