package rope

import (
	"fmt"

	"github.com/npillmayer/rope/chunk"
)

// Cursor navigates a rope rune by rune.
//
// The cursor is bound to the snapshot of the rope at the time of its
// creation; later edits of the rope are not visible to it. The chunk under
// the cursor is cached, so sequential movement does not descend the tree for
// every step.
type Cursor struct {
	text  Rope
	pos   uint64
	leaf  chunk.Chunk // chunk containing the last rune visited
	start uint64      // rune position of leaf
}

// Cursor creates a cursor positioned at the start of the rope.
func (r *Rope) Cursor() *Cursor {
	cc := &Cursor{}
	if r != nil {
		cc.text = *r
	}
	return cc
}

// Pos returns the current cursor position. It is the position of the rune
// returned by the next call to Next.
func (cc *Cursor) Pos() uint64 {
	if cc == nil {
		return 0
	}
	return cc.pos
}

// Seek moves the cursor to rune position n, with 0 ≤ n ≤ Len().
func (cc *Cursor) Seek(n uint64) error {
	if cc == nil {
		return ErrIllegalArguments
	}
	if l := cc.text.Len(); n > l {
		return fmt.Errorf("seek to %d in rope of length %d: %w", n, l, ErrIndexOutOfRange)
	}
	cc.pos = n
	return nil
}

// Next returns the rune at the current cursor position and advances by one rune.
//
// If the cursor is at end-of-text, ok is false.
func (cc *Cursor) Next() (r rune, ok bool) {
	if cc == nil || cc.pos >= cc.text.Len() {
		return 0, false
	}
	r = cc.runeAt(cc.pos)
	cc.pos++
	return r, true
}

// Prev returns the rune before the current cursor position and moves back by one rune.
//
// If the cursor is at start-of-text, ok is false.
func (cc *Cursor) Prev() (r rune, ok bool) {
	if cc == nil || cc.pos == 0 {
		return 0, false
	}
	cc.pos--
	return cc.runeAt(cc.pos), true
}

// runeAt requires i < Len().
func (cc *Cursor) runeAt(i uint64) rune {
	if cc.leaf.IsEmpty() || i < cc.start || i >= cc.start+uint64(cc.leaf.RuneCount()) {
		leaf, j := index(cc.text.root, i)
		cc.leaf, cc.start = leaf.leaf, i-j
	}
	r, err := cc.leaf.RuneAt(int(i - cc.start))
	assert(err == nil, "internal error: cursor out of chunk bounds")
	return r
}
