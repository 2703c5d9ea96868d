package role_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rolenav/pkg/role"
)

func TestFromName_RoundTrip(t *testing.T) {
	t.Parallel()

	for i := range role.Count {
		r := role.Role(i)

		got, err := role.FromName(r.String())
		require.NoError(t, err, "name %q", r.String())
		assert.Equal(t, r, got)
	}
}

func TestFromName_Unknown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "case_mismatch", in: "Push-Button"},
		{name: "outside_enumeration", in: "holographic-display"},
		{name: "underscore_variant", in: "push_button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := role.FromName(tt.in)
			require.ErrorIs(t, err, role.ErrUnknownRole)
		})
	}
}

func TestRole_Ordering(t *testing.T) {
	t.Parallel()

	// The enumeration order is the canonical total order.
	assert.Less(t, role.Invalid, role.PushButton)
	assert.Less(t, role.PushButton, role.Heading)
	assert.Less(t, role.Heading, role.Switch)
	assert.Equal(t, role.Count-1, int(role.Switch))
}

func TestRole_StringKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		want string
		r    role.Role
	}{
		{want: "invalid", r: role.Invalid},
		{want: "push-button", r: role.PushButton},
		{want: "heading", r: role.Heading},
		{want: "link", r: role.Link},
		{want: "switch", r: role.Switch},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.r.String())
		})
	}
}

func TestRole_ValidBounds(t *testing.T) {
	t.Parallel()

	assert.True(t, role.Switch.Valid())
	assert.False(t, role.Role(role.Count).Valid())
	assert.Contains(t, role.Role(200).String(), "role(")
}
