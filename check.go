package rope

import (
	"fmt"
	"math"
)

// ErrBrokenInvariant is flagged by Check for a structurally corrupt rope.
const ErrBrokenInvariant = RopeError("rope invariant violated")

// Check validates the structural invariants of a rope: every weight and
// height is recomputed from the subtree it depends on and compared with the
// stored value, siblings must be AVL-balanced and leaves must not be empty.
//
// This checker is meant for tests and debugging; it is an O(n) operation.
func (r *Rope) Check() error {
	if r.IsVoid() {
		return nil
	}
	leaves := 0
	if _, _, err := checkNode(r.root, &leaves); err != nil {
		T().Errorf("rope: %v", err)
		dump(r.root)
		return err
	}
	if h := r.root.height; float64(h) > MaxHeight(leaves) {
		return fmt.Errorf("%w: height %d exceeds bound for %d leaves", ErrBrokenInvariant, h, leaves)
	}
	return nil
}

// MaxHeight returns the bound on the height of a rope with the given number of
// leaves, 1.4405·log2(leaves+2) + 1. This is the height bound of AVL trees,
// shifted by one as leaves count as height 1.
func MaxHeight(leaves int) float64 {
	return 1.4405*math.Log2(float64(leaves+2)) + 1
}

// checkNode returns the length and the height of the subtree at n.
func checkNode(n *node, leaves *int) (length uint64, height int, err error) {
	if n == nil {
		return 0, 0, fmt.Errorf("%w: nil node", ErrBrokenInvariant)
	}
	if n.isLeaf() {
		if n.right != nil {
			return 0, 0, fmt.Errorf("%w: leaf with right child", ErrBrokenInvariant)
		}
		if n.leaf.IsEmpty() {
			return 0, 0, fmt.Errorf("%w: empty leaf", ErrBrokenInvariant)
		}
		if w := uint64(n.leaf.RuneCount()); w != n.weight {
			return 0, 0, fmt.Errorf("%w: leaf weight %d != %d runes", ErrBrokenInvariant, n.weight, w)
		}
		if n.height != 1 {
			return 0, 0, fmt.Errorf("%w: leaf height %d", ErrBrokenInvariant, n.height)
		}
		*leaves++
		return n.weight, 1, nil
	}
	if !n.leaf.IsEmpty() {
		return 0, 0, fmt.Errorf("%w: inner node carries text", ErrBrokenInvariant)
	}
	ll, lh, err := checkNode(n.left, leaves)
	if err != nil {
		return 0, 0, err
	}
	rl, rh, err := checkNode(n.right, leaves)
	if err != nil {
		return 0, 0, err
	}
	if ll != n.weight {
		return 0, 0, fmt.Errorf("%w: inner weight %d != left length %d", ErrBrokenInvariant, n.weight, ll)
	}
	if h := max(lh, rh) + 1; h != n.height {
		return 0, 0, fmt.Errorf("%w: inner height %d != %d", ErrBrokenInvariant, n.height, h)
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, 0, fmt.Errorf("%w: unbalanced node, heights %d|%d", ErrBrokenInvariant, lh, rh)
	}
	return ll + rl, n.height, nil
}
