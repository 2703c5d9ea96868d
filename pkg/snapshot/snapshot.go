// Package snapshot defines the serialized interchange form of an
// accessibility tree: one record per node carrying a role name and an ordered
// list of children. Snapshots are produced by an external acquisition tool in
// a single shot and consumed whole; there are no streaming or partial-tree
// semantics.
//
// Snapshot files are JSON, optionally LZ4-frame compressed when the file name
// carries an ".lz4" suffix. Large desktop trees compress well because role
// names repeat heavily.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4Suffix marks LZ4-frame compressed snapshot files.
const lz4Suffix = ".lz4"

// ErrEmptySnapshot is returned when a snapshot document decodes to no root.
var ErrEmptySnapshot = errors.New("snapshot: document has no root node")

// Node is one record of the serialized tree. Child order is meaningful: it
// is the navigation/reading order used to define "first match".
type Node struct {
	Role     string  `json:"role"`
	Children []*Node `json:"children,omitempty"`
}

// Decode reads a single snapshot document from r.
func Decode(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(r)

	var root Node

	err := dec.Decode(&root)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}

	if root.Role == "" && len(root.Children) == 0 {
		return nil, ErrEmptySnapshot
	}

	return &root, nil
}

// Encode writes n to w as a compact JSON document.
func Encode(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)

	err := enc.Encode(n)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}

	return nil
}

// DecodeFile reads a snapshot from path, transparently decompressing files
// with an .lz4 suffix.
func DecodeFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: open: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, lz4Suffix) {
		r = lz4.NewReader(f)
	}

	return Decode(r)
}

// EncodeFile writes a snapshot to path, compressing with LZ4 frames when the
// path carries an .lz4 suffix.
func EncodeFile(path string, n *Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create: %w", err)
	}
	defer f.Close()

	if !strings.HasSuffix(path, lz4Suffix) {
		return Encode(f, n)
	}

	zw := lz4.NewWriter(f)

	encodeErr := Encode(zw, n)
	if encodeErr != nil {
		return encodeErr
	}

	closeErr := zw.Close()
	if closeErr != nil {
		return fmt.Errorf("snapshot: close lz4 writer: %w", closeErr)
	}

	return nil
}

// Len returns the number of nodes in the snapshot rooted at n.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}

	total := 0
	stack := []*Node{n}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++

		stack = append(stack, cur.Children...)
	}

	return total
}
