package rope

import (
	"io"
	"unicode/utf8"
)

// Reader returns a reader for the bytes of a rope. The reader works on the
// snapshot of the rope at the time of the call.
func (r *Rope) Reader() *Reader {
	rd := &Reader{}
	if r != nil {
		rd.descend(r.root)
	}
	return rd
}

// Reader implements io.Reader and io.RuneReader, reading the text of a rope
// leaf by leaf.
type Reader struct {
	stack []*node // right siblings still to visit
	text  []byte  // unread bytes of the current leaf
}

var _ io.Reader = (*Reader)(nil)
var _ io.RuneReader = (*Reader)(nil)

// Read reads into p and returns the number of bytes read.
// If there is nothing left to read, Read returns 0 and io.EOF.
func (rd *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !rd.fill() {
		return 0, io.EOF
	}
	n := copy(p, rd.text)
	rd.text = rd.text[n:]
	return n, nil
}

// ReadRune returns the next rune and its byte-width.
// If there are no more runes to read, ReadRune returns 0 and io.EOF.
func (rd *Reader) ReadRune() (rune, int, error) {
	if !rd.fill() {
		return 0, 0, io.EOF
	}
	// leaves never cut a rune, so the current leaf holds a complete one
	ch, w := utf8.DecodeRune(rd.text)
	rd.text = rd.text[w:]
	return ch, w, nil
}

// fill makes sure there are unread bytes in rd.text, advancing to the next
// leaf if necessary. It returns false at the end of the text.
func (rd *Reader) fill() bool {
	for len(rd.text) == 0 {
		k := len(rd.stack)
		if k == 0 {
			return false
		}
		next := rd.stack[k-1]
		rd.stack = rd.stack[:k-1]
		rd.descend(next)
	}
	return true
}

// descend walks down the left spine of n, remembering right siblings, and
// makes the leftmost leaf the current one.
func (rd *Reader) descend(n *node) {
	if n == nil {
		return
	}
	for !n.isLeaf() {
		rd.stack = append(rd.stack, n.right)
		n = n.left
	}
	rd.text = n.leaf.Bytes()
}
