package rope

import (
	"strings"
	"testing"

	"github.com/npillmayer/rope/chunk"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func leafOf(t *testing.T, s string) *node {
	t.Helper()
	c, err := chunk.New(s)
	if err != nil {
		t.Fatal(err)
	}
	return makeLeaf(c)
}

func TestFuseMergesSmallLeaves(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	n := concat(leafOf(t, "Hello "), leafOf(t, "World"))
	if !n.isLeaf() || n.leaf.String() != "Hello World" || n.weight != 11 {
		t.Errorf("expected small leaves to be merged, got %v", n)
	}
	big := strings.Repeat("x", chunk.MaxBase-2)
	n = concat(leafOf(t, big), leafOf(t, "abc"))
	if n.isLeaf() {
		t.Fatalf("expected leaves exceeding the chunk size to stay separate")
	}
	if n.weight != uint64(len(big)) || n.height != 2 {
		t.Errorf("unexpected inner node %v", n)
	}
}

func TestConcatWithNil(t *testing.T) {
	l := leafOf(t, "abc")
	if concat(l, nil) != l || concat(nil, l) != l {
		t.Errorf("concatenation with the empty tree should return the other side")
	}
	if concat(nil, nil) != nil {
		t.Errorf("expected nil")
	}
}

func TestConcatUnevenHeights(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	tall := FromString(strings.Repeat("0123456789", 200)) // 32 leaves
	short := FromString(strings.Repeat("ab", chunk.MaxBase))
	for _, r := range []Rope{Concat(tall, short), Concat(short, tall), Concat(short, tall, short)} {
		if err := r.Check(); err != nil {
			t.Fatalf("concat produced a broken tree: %v", err)
		}
	}
	r := Concat(short, tall)
	if r.String() != strings.Repeat("ab", chunk.MaxBase)+strings.Repeat("0123456789", 200) {
		t.Errorf("concat changed the text")
	}
	if tall.Len() != 2000 || short.Len() != 2*chunk.MaxBase {
		t.Errorf("concat modified its arguments")
	}
}

func TestSplitAtEndsReturnsSameTree(t *testing.T) {
	r := FromString(strings.Repeat("abcdefgh", 40))
	l, rest := split(r.root, 0)
	if l != nil || rest != r.root {
		t.Errorf("split at 0 should not create nodes")
	}
	l, rest = split(r.root, r.Len())
	if l != r.root || rest != nil {
		t.Errorf("split at the end should not create nodes")
	}
}

func TestSplitAtWeight(t *testing.T) {
	r := FromString(strings.Repeat("abcdefgh", 40))
	if r.root.isLeaf() {
		t.Fatalf("expected an inner root")
	}
	l, rest := split(r.root, r.root.weight)
	if l != r.root.left || rest != r.root.right {
		t.Errorf("split at the root's weight should return its children")
	}
}

func TestSplitNodes(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	s := strings.Repeat("äbcdefgh", 40)
	runes := []rune(s)
	r := FromString(s)
	for i := 0; i <= len(runes); i += 7 {
		l, rest := split(r.root, uint64(i))
		lr, rr := Rope{root: l}, Rope{root: rest}
		if lr.String() != string(runes[:i]) || rr.String() != string(runes[i:]) {
			t.Fatalf("split at %d produced wrong halves", i)
		}
		if err := lr.Check(); err != nil {
			t.Fatalf("left half of split at %d: %v", i, err)
		}
		if err := rr.Check(); err != nil {
			t.Fatalf("right half of split at %d: %v", i, err)
		}
	}
	if r.String() != s {
		t.Errorf("split modified the original tree")
	}
}

func TestRotationsKeepOrder(t *testing.T) {
	a, b, c := leafOf(t, strings.Repeat("a", 40)), leafOf(t, strings.Repeat("b", 40)), leafOf(t, strings.Repeat("c", 40))
	n := makeInner(a, makeInner(b, c, 40), 40)
	rl := rotateLeft(n)
	if rl.weight != 80 || rl.left.weight != 40 {
		t.Errorf("rotateLeft produced wrong weights: %d/%d", rl.weight, rl.left.weight)
	}
	rr := rotateRight(rl)
	if rr.weight != 40 || rr.right.weight != 40 {
		t.Errorf("rotateRight produced wrong weights: %d/%d", rr.weight, rr.right.weight)
	}
	for _, x := range []*node{rl, rr} {
		r := Rope{root: x}
		if r.String() != strings.Repeat("a", 40)+strings.Repeat("b", 40)+strings.Repeat("c", 40) {
			t.Errorf("rotation changed the text")
		}
	}
}

func TestIndexLocatesLeaf(t *testing.T) {
	r := FromString(strings.Repeat("x", chunk.MaxBase) + "Y" + strings.Repeat("z", 10))
	leaf, j := index(r.root, chunk.MaxBase)
	ch, err := leaf.leaf.RuneAt(int(j))
	if err != nil || ch != 'Y' {
		t.Errorf("expected 'Y', got %q (%v)", ch, err)
	}
}
