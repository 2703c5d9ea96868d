package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

func TestSet_AddContains(t *testing.T) {
	t.Parallel()

	var s role.Set

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(role.Heading))

	s.Add(role.Heading)
	s.Add(role.Link)
	s.Add(role.Switch) // Last bit of the enumeration.

	assert.True(t, s.Contains(role.Heading))
	assert.True(t, s.Contains(role.Link))
	assert.True(t, s.Contains(role.Switch))
	assert.False(t, s.Contains(role.PushButton))
	assert.Equal(t, 3, s.Len())
}

func TestSet_UnionIntersect(t *testing.T) {
	t.Parallel()

	a := role.Of(role.Heading, role.Link)
	b := role.Of(role.Link, role.PushButton)

	u := a.Union(b)
	assert.Equal(t, role.Of(role.Heading, role.Link, role.PushButton), u)

	i := a.Intersect(b)
	assert.Equal(t, role.Of(role.Link), i)

	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(role.Of(role.Slider)))

	// Union must not mutate its receiver: Set is a value type.
	assert.Equal(t, role.Of(role.Heading, role.Link), a)
}

func TestSet_UnionWith(t *testing.T) {
	t.Parallel()

	s := role.Of(role.Heading)
	s.UnionWith(role.Of(role.Link, role.Switch))

	assert.Equal(t, role.Of(role.Heading, role.Link, role.Switch), s)
}

func TestSet_RolesAscendingOrder(t *testing.T) {
	t.Parallel()

	s := role.Of(role.Switch, role.Invalid, role.Heading, role.PushButton)

	got := s.Roles()
	require.Len(t, got, 4)
	assert.Equal(t, []role.Role{role.Invalid, role.PushButton, role.Heading, role.Switch}, got)
}

func TestSet_AllEarlyStop(t *testing.T) {
	t.Parallel()

	s := role.Of(role.Alert, role.Heading, role.Switch)

	var first role.Role
	for r := range s.All() {
		first = r

		break
	}

	assert.Equal(t, role.Alert, first)
}

func TestSet_IgnoresOutOfRange(t *testing.T) {
	t.Parallel()

	var s role.Set

	s.Add(role.Role(role.Count)) // One past the last role.

	assert.True(t, s.IsEmpty())
	assert.False(t, s.Contains(role.Role(255)))
}

func TestSet_String(t *testing.T) {
	t.Parallel()

	s := role.Of(role.Link, role.Heading)
	assert.Equal(t, "heading,link", s.String())
}
