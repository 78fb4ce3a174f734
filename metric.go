package rope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import "fmt"

// Metric is a metric to calculate on a rope. Sometimes it's helpful to find
// information about a (large) text by collecting metrics from fragments and
// assembling them. Ropes naturally break up texts into smaller fragments,
// letting us calculate metrics by applying them to (a subset of) fragments and
// propagate them upwards the nodes of the rope tree.
//
// An example of a (very simplistic) metric would be to count the number of
// lines in a text. The total count is calculated by counting the newlines in
// every fragment and adding up intermediate sums while travelling upwards
// through the rope's tree.
//
// Clients have no control over size or boundaries of the fragments, except
// that fragments never split a rune. Combine must be associative, i.e. form a
// semigroup over V, and Apply must be compatible with it:
//
//	Combine(Apply(a), Apply(b)) == Apply(a+b)
//
// Metrics which depend on context across fragment boundaries (words, for
// example) have to carry enough information about the fragment ends in V to
// repair the boundary in Combine.
type Metric[V any] interface {
	Apply(frag string) V
	Combine(left, right V) V
}

// ApplyMetric applies a metric calculation on a (section of a) text.
//
// i and j are rune positions with Go slice semantics.
// If [i, j) does not specify a valid slice of the text, an error will be
// returned. For an empty range the zero value of V is returned.
func ApplyMetric[V any](r *Rope, i, j uint64, metric Metric[V]) (V, error) {
	var zero V
	if r == nil {
		return zero, ErrIllegalArguments
	}
	if err := r.checkRange(i, j); err != nil {
		return zero, fmt.Errorf("apply metric to [%d,%d): %w", i, j, err)
	}
	if i == j {
		return zero, nil
	}
	return applyMetric(r.root, i, j, metric), nil
}

// applyMetric requires 0 ≤ i < j ≤ length(n).
func applyMetric[V any](n *node, i, j uint64, metric Metric[V]) V {
	if n.isLeaf() {
		frag, err := n.leaf.Slice(int(i), int(min(j, n.weight)))
		assert(err == nil, "internal error: metric range outside of leaf")
		return metric.Apply(frag.String())
	}
	w := n.weight
	switch {
	case j <= w:
		return applyMetric(n.left, i, j, metric)
	case i >= w:
		return applyMetric(n.right, i-w, j-w, metric)
	}
	vl := applyMetric(n.left, i, w, metric)
	vr := applyMetric(n.right, 0, j-w, metric)
	return metric.Combine(vl, vr)
}
