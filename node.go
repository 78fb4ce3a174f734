package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/npillmayer/rope/chunk"
)

// This implementation follows more or less the description of the `Rope´ data
// structure as described in Wikipedia, with AVL-style balancing added on top.
// Some invariants hold:
//
//   * A node is either a leaf or has exactly two children.
//   * The weight of an inner node is equal to the rune count of its *left* subtree.
//   * The weight of a leaf is equal to the rune count of the fragment it carries.
//   * The total length of a subtree, starting from node N, is equal to N's
//     weight, plus the weights of the straight line of right children down to
//     the rightmost leaf of the subtree.
//   * The height of a leaf is 1, the height of an inner node is one more than
//     the maximum height of its children.
//   * The heights of two siblings differ by at most 1.
//   * No leaf is empty. The empty text is represented by a nil root.
//
// We do not include a reference to the parent node. This is necessary to
// be able to re-use subtrees and to have a persistent (immutable) data
// structure without having to always clone the complete tree. Tree operations
// create new nodes on the path they modify, but leave unchanged parts of the
// tree in place and rather reference them.

type node struct {
	left, right *node
	leaf        chunk.Chunk
	weight      uint64
	height      int
}

func makeLeaf(c chunk.Chunk) *node {
	assert(!c.IsEmpty(), "internal error: attempt to create an empty leaf")
	return &node{
		leaf:   c,
		weight: uint64(c.RuneCount()),
		height: 1,
	}
}

// makeInner creates an inner node. weight has to be the length of left; callers
// usually know it without walking the spine of left.
func makeInner(left, right *node, weight uint64) *node {
	assert(left != nil && right != nil, "internal error: inner node needs two children")
	return &node{
		left:   left,
		right:  right,
		weight: weight,
		height: max(left.height, right.height) + 1,
	}
}

func (n *node) isLeaf() bool {
	return n.left == nil
}

// length returns the rune count of the subtree rooted at n. It follows the
// right spine and is an O(log n) operation.
func (n *node) length() uint64 {
	var l uint64
	for ; n != nil; n = n.right {
		l += n.weight
	}
	return l
}

func heightOf(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node) String() string {
	if n.isLeaf() {
		return n.leaf.String()
	}
	return fmt.Sprintf("<inner %d|%d|>", n.weight, n.height)
}

// --- Concatenation ---------------------------------------------------------

// concat joins two trees, preserving order. If either side is empty, the other
// side is returned unchanged.
//
// concat is a join of AVL trees: if the heights of l and r differ by more than
// one, the smaller tree is hung into the spine of the taller one and the
// spine is rebalanced on the way back up.
func concat(l, r *node) *node {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	switch {
	case l.height > r.height+1:
		return joinRight(l, r)
	case r.height > l.height+1:
		return joinLeft(l, r, l.length())
	}
	return fuse(l, r, l.length())
}

// fuse puts two trees of similar height below a new inner node. Two leaves
// whose fragments fit into a single chunk are merged into one leaf instead.
// lw is the length of l.
func fuse(l, r *node, lw uint64) *node {
	if l.isLeaf() && r.isLeaf() {
		if c, ok := l.leaf.Append(r.leaf); ok {
			return makeLeaf(c)
		}
	}
	return makeInner(l, r, lw)
}

// joinRight hangs r into the right spine of l, where l is taller than r by
// at least 2.
func joinRight(l, r *node) *node {
	ll, c := l.left, l.right
	if c.height <= r.height+1 {
		t := fuse(c, r, c.length())
		if t.height <= ll.height+1 {
			return makeInner(ll, t, l.weight)
		}
		return rotateLeft(makeInner(ll, rotateRight(t), l.weight))
	}
	t := joinRight(c, r)
	n := makeInner(ll, t, l.weight)
	if t.height <= ll.height+1 {
		return n
	}
	return rotateLeft(n)
}

// joinLeft hangs l into the left spine of r, where r is taller than l by
// at least 2. lw is the length of l.
func joinLeft(l, r *node, lw uint64) *node {
	c, rr := r.left, r.right
	if c.height <= l.height+1 {
		t := fuse(l, c, lw)
		if t.height <= rr.height+1 {
			return makeInner(t, rr, lw+r.weight)
		}
		return rotateRight(makeInner(rotateLeft(t), rr, lw+r.weight))
	}
	t := joinLeft(l, c, lw)
	n := makeInner(t, rr, lw+r.weight)
	if t.height <= rr.height+1 {
		return n
	}
	return rotateRight(n)
}

// rotateLeft turns (A, (B, C)) into ((A, B), C).
func rotateLeft(n *node) *node {
	r := n.right
	assert(!r.isLeaf(), "internal error: cannot rotate left over a leaf")
	left := makeInner(n.left, r.left, n.weight)
	return makeInner(left, r.right, n.weight+r.weight)
}

// rotateRight turns ((A, B), C) into (A, (B, C)).
func rotateRight(n *node) *node {
	l := n.left
	assert(!l.isLeaf(), "internal error: cannot rotate right over a leaf")
	right := makeInner(l.right, n.right, n.weight-l.weight)
	return makeInner(l.left, right, l.weight)
}

// --- Splitting -------------------------------------------------------------

// split divides the tree at rune offset i into two trees whose concatenation
// reproduces the original. i must not exceed the length of n.
// Splitting at either end does not create any nodes.
func split(n *node, i uint64) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if i == 0 {
		return nil, n
	}
	if i >= n.length() {
		return n, nil
	}
	return splitNode(n, i)
}

// splitNode is the recursive part of split, with 0 < i < length(n).
func splitNode(n *node, i uint64) (*node, *node) {
	if n.isLeaf() {
		a, b, err := n.leaf.SplitAt(int(i))
		assert(err == nil, "internal error: leaf split out of bounds")
		return makeLeaf(a), makeLeaf(b)
	}
	switch {
	case i < n.weight:
		l, r := splitNode(n.left, i)
		return l, concat(r, n.right)
	case i == n.weight:
		return n.left, n.right
	}
	l, r := splitNode(n.right, i-n.weight)
	return concat(n.left, l), r
}

// --- Indexing --------------------------------------------------------------

// index locates the leaf containing rune offset i, together with the offset
// within the leaf. i must be smaller than the length of n.
func index(n *node, i uint64) (*node, uint64) {
	for !n.isLeaf() {
		if i < n.weight {
			n = n.left
		} else {
			i -= n.weight
			n = n.right
		}
	}
	return n, i
}

// --- Traversal -------------------------------------------------------------

// traverse walks the subtree of node in order, calling f for every node with
// the rune position of the start of the node's text and the node's depth.
// Inner nodes are visited before their children.
func traverse(n *node, pos uint64, depth int, f func(*node, uint64, int) error) error {
	if n == nil {
		return nil
	}
	if err := f(n, pos, depth); err != nil {
		return err
	}
	if n.isLeaf() {
		return nil
	}
	if err := traverse(n.left, pos, depth+1, f); err != nil {
		return err
	}
	return traverse(n.right, pos+n.weight, depth+1, f)
}

// eachLeaf visits the leaves of n in order; it stops as soon as yield returns
// false and reports whether iteration ran to completion.
func eachLeaf(n *node, yield func(chunk.Chunk) bool) bool {
	if n == nil {
		return true
	}
	if n.isLeaf() {
		return yield(n.leaf)
	}
	return eachLeaf(n.left, yield) && eachLeaf(n.right, yield)
}
