package snapshot_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/rolenav/pkg/snapshot"
)

const (
	genSeed        = 42
	genNodes       = 5000
	genMaxChildren = 6
)

func sampleTree() *snapshot.Node {
	return &snapshot.Node{
		Role: "application",
		Children: []*snapshot.Node{
			{Role: "frame", Children: []*snapshot.Node{
				{Role: "push-button"},
				{Role: "heading"},
			}},
			{Role: "dialog"},
		},
	}
}

func TestDecode_Simple(t *testing.T) {
	t.Parallel()

	doc := `{"role":"frame","children":[{"role":"push-button"},{"role":"link"}]}`

	root, err := snapshot.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "frame", root.Role)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "push-button", root.Children[0].Role)
	assert.Equal(t, "link", root.Children[1].Role)
	assert.Equal(t, 3, root.Len())
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "not_json", doc: "not json"},
		{name: "truncated", doc: `{"role":"frame","children":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := snapshot.Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	_, err := snapshot.Decode(strings.NewReader(`{}`))
	require.ErrorIs(t, err, snapshot.ErrEmptySnapshot)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, snapshot.Encode(&buf, sampleTree()))

	got, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleTree(), got)
}

func TestFileRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
	}{
		{name: "plain_json", filename: "tree.json"},
		{name: "lz4_compressed", filename: "tree.json.lz4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), tt.filename)

			require.NoError(t, snapshot.EncodeFile(path, sampleTree()))

			got, err := snapshot.DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, sampleTree(), got)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "valid",
			doc:  `{"role":"frame","children":[{"role":"link"}]}`,
		},
		{
			name: "valid_leaf",
			doc:  `{"role":"frame"}`,
		},
		{
			name:    "missing_role",
			doc:     `{"children":[]}`,
			wantErr: true,
		},
		{
			name:    "extra_property",
			doc:     `{"role":"frame","weight":3}`,
			wantErr: true,
		},
		{
			name:    "nested_violation",
			doc:     `{"role":"frame","children":[{"children":[]}]}`,
			wantErr: true,
		},
		{
			name:    "wrong_children_type",
			doc:     `{"role":"frame","children":{"role":"link"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := snapshot.Validate([]byte(tt.doc))
			if tt.wantErr {
				require.ErrorIs(t, err, snapshot.ErrSchemaViolation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	a := snapshot.Generate(genSeed, genNodes, genMaxChildren)
	b := snapshot.Generate(genSeed, genNodes, genMaxChildren)

	assert.Equal(t, a, b)
	assert.Equal(t, genNodes, a.Len())

	c := snapshot.Generate(genSeed+1, genNodes, genMaxChildren)
	assert.NotEqual(t, a, c)
}

func TestGenerate_FanoutCap(t *testing.T) {
	t.Parallel()

	root := snapshot.Generate(genSeed, genNodes, genMaxChildren)

	stack := []*snapshot.Node{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		require.LessOrEqual(t, len(cur.Children), genMaxChildren)

		stack = append(stack, cur.Children...)
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, snapshot.Render(&buf, sampleTree()))

	want := "application (2)\n" +
		"├── frame (2)\n" +
		"│   ├── push-button (0)\n" +
		"│   └── heading (0)\n" +
		"└── dialog (0)\n"

	assert.Equal(t, want, buf.String())
}
