package rope

import (
	"fmt"
	"unicode/utf8"
)

// All editing operations validate their arguments before touching the tree.
// A failing operation leaves the rope in its prior state; a successful one
// replaces the root in a single assignment.

// Insert inserts text at rune position i, with 0 ≤ i ≤ Len().
// Inserting the empty string is a no-op.
func (r *Rope) Insert(i uint64, text string) error {
	if r == nil {
		return ErrIllegalArguments
	}
	if n := r.Len(); i > n {
		return fmt.Errorf("insert at %d into rope of length %d: %w", i, n, ErrIndexOutOfRange)
	}
	if text == "" {
		return nil
	}
	t, err := buildTree(text)
	if err != nil {
		return err
	}
	r.root = insertNode(r.root, i, t)
	T().Debugf("rope: inserted %d bytes at %d", len(text), i)
	return nil
}

// Append appends text at the end of the rope.
func (r *Rope) Append(text string) error {
	return r.Insert(r.Len(), text)
}

// Prepend inserts text at the start of the rope.
func (r *Rope) Prepend(text string) error {
	return r.Insert(0, text)
}

// Delete removes the runes in [start, end), with 0 ≤ start ≤ end ≤ Len().
// start == end is a no-op.
func (r *Rope) Delete(start, end uint64) error {
	if r == nil {
		return ErrIllegalArguments
	}
	if err := r.checkRange(start, end); err != nil {
		return fmt.Errorf("delete [%d,%d): %w", start, end, err)
	}
	if start == end {
		return nil
	}
	r.root = deleteNode(r.root, start, end)
	T().Debugf("rope: deleted [%d,%d)", start, end)
	return nil
}

// Update overwrites the text starting at rune position i with text. The
// overwritten region [i, i+len(text)) must lie within the rope, i.e. the
// length of the rope does not change. len(text) counts runes.
func (r *Rope) Update(i uint64, text string) error {
	if r == nil {
		return ErrIllegalArguments
	}
	if !utf8.ValidString(text) {
		return fmt.Errorf("update at %d: %w", i, ErrIllegalArguments)
	}
	n := uint64(utf8.RuneCountInString(text))
	if err := r.checkSpan(i, n); err != nil {
		return fmt.Errorf("update %d runes at %d: %w", n, i, err)
	}
	end := i + n
	if text == "" {
		return nil
	}
	t, err := buildTree(text)
	if err != nil {
		return err
	}
	root := deleteNode(r.root, i, end)
	r.root = insertNode(root, i, t)
	T().Debugf("rope: updated [%d,%d)", i, end)
	return nil
}

// checkRange validates a range [start, end) against the rope.
func (r *Rope) checkRange(start, end uint64) error {
	if start > end {
		return ErrInvalidRange
	}
	if end > r.Len() {
		return ErrIndexOutOfRange
	}
	return nil
}

// checkSpan validates a range of l runes starting at i. It does not compute
// i+l, which may overflow.
func (r *Rope) checkSpan(i, l uint64) error {
	if n := r.Len(); i > n || l > n-i {
		return ErrIndexOutOfRange
	}
	return nil
}

func insertNode(root *node, i uint64, t *node) *node {
	l, rest := split(root, i)
	return concat(concat(l, t), rest)
}

func deleteNode(root *node, start, end uint64) *node {
	l, rest := split(root, start)
	_, rr := split(rest, end-start)
	return concat(l, rr)
}

// Rebalance rebuilds the rope as a perfectly balanced tree, merging adjacent
// fragments which fit into a single chunk. Edits keep a rope balanced anyway;
// Rebalance is useful to compact a rope after many small edits.
func (r *Rope) Rebalance() {
	if r.IsVoid() {
		return
	}
	b := NewBuilder()
	for c := range r.Chunks() {
		b.appendChunk(c)
	}
	before := r.FragmentCount()
	r.root = buildBalanced(b.orderedChunks())
	T().Debugf("rope: rebalanced %d fragments into %d", before, r.FragmentCount())
}

// --- Persistent operations -------------------------------------------------

// Concat concatenates ropes and returns a new rope. The arguments are not
// modified.
func Concat(rope Rope, others ...Rope) Rope {
	root := rope.root
	for _, other := range others {
		root = concat(root, other.root)
	}
	return Rope{root: root}
}

// Split splits a rope into two new (smaller) ropes right before position i.
// Split(R,i) => split R into R1 and R2, with R1=r0,...,ri-1 and R2=ri,...,rn.
func Split(rope Rope, i uint64) (Rope, Rope, error) {
	if n := rope.Len(); i > n {
		return Rope{}, Rope{}, fmt.Errorf("split at %d of rope of length %d: %w", i, n, ErrIndexOutOfRange)
	}
	l, r := split(rope.root, i)
	return Rope{root: l}, Rope{root: r}, nil
}

// Cut cuts out a substring [i...i+l) from a rope. It returns a new rope
// without the cut-out segment and the cut segment itself.
func Cut(rope Rope, i, l uint64) (Rope, Rope, error) {
	if err := rope.checkSpan(i, l); err != nil {
		return Rope{}, Rope{}, err
	}
	if l == 0 {
		return rope, Rope{}, nil
	}
	left, rest := split(rope.root, i)
	mid, right := split(rest, l)
	return Rope{root: concat(left, right)}, Rope{root: mid}, nil
}

// Substr creates a new rope from runes [i...i+l) of rope.
func Substr(rope Rope, i, l uint64) (Rope, error) {
	if err := rope.checkSpan(i, l); err != nil {
		return Rope{}, err
	}
	if l == 0 {
		return Rope{}, nil
	}
	_, rest := split(rope.root, i)
	sub, _ := split(rest, l)
	return Rope{root: sub}, nil
}

// Report outputs a substring: Report(i,l) => outputs the string ri,...,ri+l-1.
func (r *Rope) Report(i, l uint64) (string, error) {
	if r == nil {
		return "", ErrIllegalArguments
	}
	sub, err := Substr(*r, i, l)
	if err != nil {
		return "", err
	}
	return sub.String(), nil
}
