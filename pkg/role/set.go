package role

import (
	"iter"
	"math/bits"
	"strings"
)

// wordBits is the number of bits per Set word.
const wordBits = 64

// setWords is the number of uint64 words needed to cover the enumeration.
const setWords = (Count + wordBits - 1) / wordBits

// Set is a fixed-width bitset over the role enumeration: bit i is set when
// role i is present. The zero value is the empty set. Set is a small value
// type; union and membership tests cost O(setWords) words, independent of
// how many roles are present.
type Set [setWords]uint64

// Of builds a Set containing the given roles.
func Of(roles ...Role) Set {
	var s Set
	for _, r := range roles {
		s.Add(r)
	}

	return s
}

// Add sets the bit for r. Roles outside the enumeration are ignored.
func (s *Set) Add(r Role) {
	if !r.Valid() {
		return
	}

	s[r/wordBits] |= 1 << (r % wordBits)
}

// Contains reports whether the bit for r is set.
func (s Set) Contains(r Role) bool {
	if !r.Valid() {
		return false
	}

	return s[r/wordBits]&(1<<(r%wordBits)) != 0
}

// Union returns the bitwise union of s and other.
func (s Set) Union(other Set) Set {
	for i := range s {
		s[i] |= other[i]
	}

	return s
}

// UnionWith folds other into s in place.
func (s *Set) UnionWith(other Set) {
	for i := range s {
		s[i] |= other[i]
	}
}

// Intersect returns the bitwise intersection of s and other.
func (s Set) Intersect(other Set) Set {
	for i := range s {
		s[i] &= other[i]
	}

	return s
}

// Intersects reports whether s and other share at least one role.
func (s Set) Intersects(other Set) bool {
	for i := range s {
		if s[i]&other[i] != 0 {
			return true
		}
	}

	return false
}

// IsEmpty reports whether no bit is set.
func (s Set) IsEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}

	return true
}

// Len returns the number of set bits.
func (s Set) Len() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}

	return n
}

// All iterates over the set roles in ascending (canonical) order.
func (s Set) All() iter.Seq[Role] {
	return func(yield func(Role) bool) {
		for wi, w := range s {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				w &= w - 1

				if !yield(Role(wi*wordBits + bit)) {
					return
				}
			}
		}
	}
}

// Roles decodes the set into a slice of roles in ascending order.
func (s Set) Roles() []Role {
	out := make([]Role, 0, s.Len())
	for r := range s.All() {
		out = append(out, r)
	}

	return out
}

// String renders the set as a comma-separated list of role names.
func (s Set) String() string {
	var b strings.Builder

	first := true

	for r := range s.All() {
		if !first {
			b.WriteString(",")
		}

		b.WriteString(r.String())

		first = false
	}

	return b.String()
}
