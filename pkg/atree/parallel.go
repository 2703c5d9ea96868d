package atree

import (
	"sync"

	"github.com/Sumatoshi-tech/rolenav/pkg/alg/forkjoin"
	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

// Parallel answers the same queries as the sequential methods by
// partitioning work across subtrees or arena chunks. Every result is
// bit-identical to its sequential counterpart for any worker count,
// including one: partial results combine by sum, union, maximum, or minimum
// index — never by completion order.
type Parallel struct {
	t    *Tree
	opts forkjoin.Options
}

// Parallel returns a parallel query view over the tree. Workers ≤ 0 means
// one goroutine per CPU; threshold ≤ 0 picks the package default below which
// a partition runs sequentially.
func (t *Tree) Parallel(workers, threshold int) *Parallel {
	return &Parallel{
		t:    t,
		opts: forkjoin.Options{Workers: workers, Threshold: threshold}.Normalize(),
	}
}

// HowMany counts nodes with role r by summing per-chunk counts over the
// arena.
func (p *Parallel) HowMany(r role.Role) int {
	t := p.t

	return forkjoin.Reduce(p.opts, t.Len(), func(lo, hi int) int {
		n := 0

		for _, own := range t.roles[lo:hi] {
			if own == r {
				n++
			}
		}

		return n
	}, func(a, b int) int { return a + b })
}

// MaxDepth computes the maximum over per-chunk depth maxima. Depths are
// recorded at build time, so each chunk is a flat scan.
func (p *Parallel) MaxDepth() int {
	t := p.t
	if t.Len() == 0 {
		return 0
	}

	return int(forkjoin.Reduce(p.opts, t.Len(), func(lo, hi int) int32 {
		deepest := int32(0)

		for _, d := range t.depths[lo:hi] {
			if d > deepest {
				deepest = d
			}
		}

		return deepest
	}, func(a, b int32) int32 { return max(a, b) }))
}

// UniqueRoles unions per-chunk role sets.
func (p *Parallel) UniqueRoles() role.Set {
	t := p.t

	return forkjoin.Reduce(p.opts, t.Len(), func(lo, hi int) role.Set {
		var s role.Set

		for _, r := range t.roles[lo:hi] {
			s.Add(r)
		}

		return s
	}, role.Set.Union)
}

// Leaves collects all leaf nodes in reading order by concatenating per-chunk
// leaf lists in chunk order.
func (p *Parallel) Leaves() []NodeID {
	t := p.t

	return forkjoin.Reduce(p.opts, t.Len(), func(lo, hi int) []NodeID {
		var leaves []NodeID

		for i := lo; i < hi; i++ {
			if t.isLeaf(NodeID(i)) {
				leaves = append(leaves, NodeID(i))
			}
		}

		return leaves
	}, func(a, b []NodeID) []NodeID { return append(a, b...) })
}

// FindFirst returns the earliest node in reading order with role r. Chunks
// are scanned in parallel and combined by minimum index, so the winner is
// the pre-order first match, not the first partition to finish.
func (p *Parallel) FindFirst(r role.Role) (NodeID, bool) {
	t := p.t

	idx, ok := forkjoin.First(p.opts, t.Len(), func(lo, hi int) (int, bool) {
		for i := lo; i < hi; i++ {
			if t.roles[i] == r {
				return i, true
			}
		}

		return 0, false
	})
	if !ok {
		return NoNode, false
	}

	return NodeID(idx), true
}

// HowManyRoleset counts nodes with role r, pruning subtrees whose bitset
// lacks r and forking on subtrees large enough to be worth a goroutine.
func (p *Parallel) HowManyRoleset(r role.Role) int {
	t := p.t
	if t.Len() == 0 || !t.subtree[0].Contains(r) {
		return 0
	}

	lim := forkjoin.NewLimiter(p.opts.Workers)

	return p.forkCount(0, r, lim)
}

func (p *Parallel) forkCount(id NodeID, r role.Role, lim forkjoin.Limiter) int {
	t := p.t

	if int(t.sizes[id]) <= p.opts.Threshold {
		return t.countPruned(id, r)
	}

	total := 0
	if t.roles[id] == r {
		total = 1
	}

	kids := t.kids(id)
	partials := make([]int, len(kids))

	var wg sync.WaitGroup

	for i, child := range kids {
		if !t.subtree[child].Contains(r) {
			continue
		}

		if lim.TryAcquire() {
			wg.Add(1)

			go func(slot int, child NodeID) {
				defer wg.Done()
				defer lim.Release()

				partials[slot] = p.forkCount(child, r, lim)
			}(i, child)
		} else {
			partials[i] = p.forkCount(child, r, lim)
		}
	}

	wg.Wait()

	for _, n := range partials {
		total += n
	}

	return total
}

// FindFirstRoleset returns the earliest node with role r, pruning by bitset
// and forking across candidate subtrees. Because a whole earlier-sibling
// subtree precedes a later sibling's, the first hit in child order is the
// pre-order first match.
func (p *Parallel) FindFirstRoleset(r role.Role) (NodeID, bool) {
	t := p.t
	if t.Len() == 0 || !t.subtree[0].Contains(r) {
		return NoNode, false
	}

	lim := forkjoin.NewLimiter(p.opts.Workers)

	found := p.forkFind(0, r, lim)
	if found == NoNode {
		return NoNode, false
	}

	return found, true
}

func (p *Parallel) forkFind(id NodeID, r role.Role, lim forkjoin.Limiter) NodeID {
	t := p.t

	if int(t.sizes[id]) <= p.opts.Threshold {
		found, ok := t.findPruned(id, r)
		if !ok {
			return NoNode
		}

		return found
	}

	// A node precedes all of its descendants, so a match here wins outright.
	if t.roles[id] == r {
		return id
	}

	kids := t.kids(id)
	partials := make([]NodeID, len(kids))

	var wg sync.WaitGroup

	for i, child := range kids {
		partials[i] = NoNode

		if !t.subtree[child].Contains(r) {
			continue
		}

		if lim.TryAcquire() {
			wg.Add(1)

			go func(slot int, child NodeID) {
				defer wg.Done()
				defer lim.Release()

				partials[slot] = p.forkFind(child, r, lim)
			}(i, child)
		} else {
			partials[i] = p.forkFind(child, r, lim)
		}
	}

	wg.Wait()

	for _, found := range partials {
		if found != NoNode {
			return found
		}
	}

	return NoNode
}
