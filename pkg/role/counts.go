package role

// countPair is one (role, occurrences) entry in a Counts table.
type countPair struct {
	role Role
	n    uint32
}

// Counts maps roles to non-negative occurrence counts. It is stored as a
// slice of pairs sorted by role, which keeps the per-node footprint
// proportional to the number of distinct roles actually present in a subtree
// rather than to the size of the enumeration. Roles absent from the table
// count as zero.
type Counts struct {
	pairs []countPair
}

// CountsOf builds a Counts holding a single role with the given count.
func CountsOf(r Role, n int) Counts {
	if n <= 0 {
		return Counts{}
	}

	return Counts{pairs: []countPair{{role: r, n: uint32(n)}}}
}

// Get returns the count for r, with absent roles reported as zero.
func (c Counts) Get(r Role) int {
	lo, hi := 0, len(c.pairs)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.pairs[mid].role < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < len(c.pairs) && c.pairs[lo].role == r {
		return int(c.pairs[lo].n)
	}

	return 0
}

// Add increments the count for r by n, inserting the role if absent.
func (c *Counts) Add(r Role, n int) {
	if n <= 0 {
		return
	}

	lo, hi := 0, len(c.pairs)
	for lo < hi {
		mid := (lo + hi) / 2
		if c.pairs[mid].role < r {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo < len(c.pairs) && c.pairs[lo].role == r {
		c.pairs[lo].n += uint32(n)

		return
	}

	c.pairs = append(c.pairs, countPair{})
	copy(c.pairs[lo+1:], c.pairs[lo:])
	c.pairs[lo] = countPair{role: r, n: uint32(n)}
}

// Merge folds other into c additively. Both pair lists are sorted by role, so
// the merge is a single linear pass.
func (c *Counts) Merge(other Counts) {
	if len(other.pairs) == 0 {
		return
	}

	if len(c.pairs) == 0 {
		c.pairs = append(c.pairs, other.pairs...)

		return
	}

	merged := make([]countPair, 0, len(c.pairs)+len(other.pairs))

	i, j := 0, 0
	for i < len(c.pairs) && j < len(other.pairs) {
		switch {
		case c.pairs[i].role < other.pairs[j].role:
			merged = append(merged, c.pairs[i])
			i++
		case c.pairs[i].role > other.pairs[j].role:
			merged = append(merged, other.pairs[j])
			j++
		default:
			merged = append(merged, countPair{
				role: c.pairs[i].role,
				n:    c.pairs[i].n + other.pairs[j].n,
			})
			i++
			j++
		}
	}

	merged = append(merged, c.pairs[i:]...)
	merged = append(merged, other.pairs[j:]...)

	c.pairs = merged
}

// Roles returns the roles with a non-zero count, in ascending order.
func (c Counts) Roles() []Role {
	out := make([]Role, len(c.pairs))
	for i, p := range c.pairs {
		out[i] = p.role
	}

	return out
}

// Distinct returns the number of distinct roles in the table.
func (c Counts) Distinct() int {
	return len(c.pairs)
}

// Total returns the sum of all counts, which for a subtree table equals the
// subtree's node count.
func (c Counts) Total() int {
	total := 0
	for _, p := range c.pairs {
		total += int(p.n)
	}

	return total
}
