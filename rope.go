package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/npillmayer/rope/chunk"
)

// Rope is a type for large, mutable texts.
//
// A rope internally consists of fragments of text, organized as a balanced
// binary tree. Fragments and tree nodes are immutable: every modifying
// operation replaces the root of the rope by a new tree, which shares all
// untouched parts with the previous one. Copying a Rope value is cheap and
// yields a snapshot which is not affected by later modifications of the
// original.
//
// A rope created by
//
//	Rope{}
//
// is a valid object and behaves like the empty string.
//
// Positions are counted in runes. Due to their internal structure ropes do
// have performance characteristics differing from Go strings or byte arrays.
//
//	Operation     |   Rope          |  String
//	--------------+-----------------+--------
//	Index         |   O(log n)      |   O(1)
//	Split         |   O(log n)      |   O(1)
//	Iterate       |   O(n)          |   O(n)
//
//	Concatenate   |   O(log n)      |   O(n)
//	Insert        |   O(log n)      |   O(n)
//	Delete        |   O(log n)      |   O(n)
//
// A Rope is not safe for concurrent modification; see Shared.
type Rope struct {
	root *node
}

// FromString creates a rope from a Go string.
//
// The input string must be valid UTF-8. Invalid input triggers an assertion
// panic; use FromBytes or a Builder to handle untrusted input.
func FromString(s string) Rope {
	root, err := buildTree(s)
	assert(err == nil, "FromString requires valid UTF-8 input")
	return Rope{root: root}
}

// FromBytes creates a rope from UTF-8 bytes.
func FromBytes(b []byte) (Rope, error) {
	root, err := buildTree(string(b))
	if err != nil {
		return Rope{}, err
	}
	return Rope{root: root}, nil
}

// FromReader creates a rope from all the bytes readable from r, which must
// form valid UTF-8 text.
func FromReader(r io.Reader) (Rope, error) {
	b := NewBuilder()
	buf := make([]byte, 32*1024)
	var rest []byte // incomplete trailing rune of the last read
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := append(rest, buf[:n]...)
			cut := chunk.CompleteRunes(data)
			if e := b.AppendBytes(data[:cut]); e != nil {
				return Rope{}, e
			}
			rest = append([]byte(nil), data[cut:]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Rope{}, err
		}
	}
	if len(rest) > 0 {
		return Rope{}, fmt.Errorf("%w: truncated UTF-8 sequence at end of input", ErrIllegalArguments)
	}
	return b.Rope(), nil
}

// String returns the complete rope as a Go string. This may be an expensive
// operation, as it will allocate a buffer for all the bytes of the rope and
// collect all fragments to a single continuous string. When working with
// large amounts of text, clients should rather use Fragments, WriteTo or
// Reader.
func (r *Rope) String() string {
	if r.IsVoid() {
		return ""
	}
	var sb strings.Builder
	_, _ = r.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the text of the rope to w, fragment by fragment.
// It implements io.WriterTo.
func (r *Rope) WriteTo(w io.Writer) (int64, error) {
	var total int64
	var err error
	if r == nil {
		return 0, nil
	}
	eachLeaf(r.root, func(c chunk.Chunk) bool {
		var n int
		n, err = io.WriteString(w, c.String())
		total += int64(n)
		return err == nil
	})
	return total, err
}

// Fragments returns an iterator over the text fragments of the rope in
// logical order. Iterating does not modify the rope and may be restarted.
func (r *Rope) Fragments() iter.Seq[string] {
	return func(yield func(string) bool) {
		for c := range r.Chunks() {
			if !yield(c.String()) {
				return
			}
		}
	}
}

// Chunks returns an iterator over all leaf chunks in logical order.
func (r *Rope) Chunks() iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		if r == nil {
			return
		}
		eachLeaf(r.root, yield)
	}
}

// EachChunk visits all chunks in logical order.
//
// The callback receives each chunk and its starting rune position. Iteration
// stops at the first callback error and returns that error to the caller.
func (r *Rope) EachChunk(f func(chunk.Chunk, uint64) error) error {
	var err error
	var pos uint64
	for c := range r.Chunks() {
		if err = f(c, pos); err != nil {
			return err
		}
		pos += uint64(c.RuneCount())
	}
	return nil
}

// IsVoid reports whether the rope has no text.
func (r *Rope) IsVoid() bool {
	return r == nil || r.root == nil
}

// Len returns the length of the rope in runes.
func (r *Rope) Len() uint64 {
	if r == nil {
		return 0
	}
	return r.root.length()
}

// Summary returns aggregate byte/rune/line counts for the rope.
func (r *Rope) Summary() chunk.Summary {
	var s chunk.Summary
	for c := range r.Chunks() {
		s = s.Add(c.Summary())
	}
	return s
}

// Height returns the height of the rope's tree. The empty rope has height 0,
// a rope consisting of a single leaf has height 1.
func (r *Rope) Height() int {
	if r == nil {
		return 0
	}
	return heightOf(r.root)
}

// FragmentCount returns the number of fragments this rope is internally split into.
func (r *Rope) FragmentCount() int {
	cnt := 0
	for range r.Chunks() {
		cnt++
	}
	return cnt
}

// Lookup returns the rune at position i. Valid positions are 0 ≤ i < Len().
func (r *Rope) Lookup(i uint64) (rune, error) {
	if n := r.Len(); i >= n {
		return 0, fmt.Errorf("lookup at %d in rope of length %d: %w", i, n, ErrIndexOutOfRange)
	}
	leaf, j := index(r.root, i)
	ch, err := leaf.leaf.RuneAt(int(j))
	assert(err == nil, "internal error: leaf index out of bounds")
	return ch, nil
}

// Index returns the leaf chunk that includes rune position i, together with
// the rune position within that chunk.
func (r *Rope) Index(i uint64) (chunk.Chunk, uint64, error) {
	if n := r.Len(); i >= n {
		return chunk.Chunk{}, 0, fmt.Errorf("index %d in rope of length %d: %w", i, n, ErrIndexOutOfRange)
	}
	leaf, j := index(r.root, i)
	return leaf.leaf, j, nil
}

// each iterates over all nodes of the rope, inner nodes before their children.
func (r *Rope) each(f func(n *node, pos uint64, depth int) error) error {
	if r.IsVoid() {
		return nil
	}
	return traverse(r.root, 0, 0, f)
}
