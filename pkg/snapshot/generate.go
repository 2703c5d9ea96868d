package snapshot

import (
	"math/rand/v2"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Generation defaults.
const (
	defaultMaxChildren = 8
	minGeneratedNodes  = 1
)

// Generate builds a deterministic pseudo-random snapshot with the given node
// count. Each node gets a role drawn uniformly from the closed enumeration
// and at most maxChildren children. The same seed always yields the same
// tree, which is what makes generated fixtures usable in equivalence tests
// and benchmarks.
func Generate(seed uint64, nodes, maxChildren int) *Node {
	if nodes < minGeneratedNodes {
		nodes = minGeneratedNodes
	}

	if maxChildren <= 0 {
		maxChildren = defaultMaxChildren
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	root := &Node{Role: randomRole(rng)}
	open := []*Node{root}

	for built := 1; built < nodes; built++ {
		slot := rng.IntN(len(open))
		parent := open[slot]

		child := &Node{Role: randomRole(rng)}
		parent.Children = append(parent.Children, child)
		open = append(open, child)

		// Retire parents that reached their fanout cap to keep the
		// tree from degenerating into a single broad level.
		if len(parent.Children) >= maxChildren {
			open[slot] = open[len(open)-1]
			open = open[:len(open)-1]
		}
	}

	return root
}

func randomRole(rng *rand.Rand) string {
	return role.Role(rng.IntN(role.Count)).String()
}
