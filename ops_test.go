package rope

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRopeConcat(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	r1 := FromString("Hello ")
	r2 := FromString("World")
	r := Concat(r1, r2)
	if r.String() != "Hello World" {
		t.Errorf("Expected 'Hello World', got %q", r.String())
	}
	if r1.String() != "Hello " || r2.String() != "World" {
		t.Errorf("concat modified its arguments")
	}
	r = Concat(Rope{}, r1, Rope{})
	if r.String() != "Hello " {
		t.Errorf("concat with void ropes should be identity, got %q", r.String())
	}
}

func TestRopeSplit(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	r := FromString("Hello, beautiful World!")
	l, rest, err := Split(r, 7)
	if err != nil {
		t.Fatal(err)
	}
	if l.String() != "Hello, " || rest.String() != "beautiful World!" {
		t.Errorf("unexpected split result %q | %q", l.String(), rest.String())
	}
	if _, _, err = Split(r, 24); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	l, rest, _ = Split(r, 0)
	if !l.IsVoid() || rest.root != r.root {
		t.Errorf("split at 0 should yield (void, original)")
	}
	l, rest, _ = Split(r, r.Len())
	if l.root != r.root || !rest.IsVoid() {
		t.Errorf("split at length should yield (original, void)")
	}
}

func TestRopeCut(t *testing.T) {
	r := FromString("Hello, beautiful World!")
	rest, cut, err := Cut(r, 7, 10)
	if err != nil {
		t.Fatal(err)
	}
	if rest.String() != "Hello, World!" || cut.String() != "beautiful " {
		t.Errorf("unexpected cut result %q | %q", rest.String(), cut.String())
	}
	if r.String() != "Hello, beautiful World!" {
		t.Errorf("cut modified its argument")
	}
	if _, _, err = Cut(r, 20, 10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestRopeSubstrAndReport(t *testing.T) {
	s := strings.Repeat("Grüße ", 30)
	r := FromString(s)
	runes := []rune(s)
	sub, err := Substr(r, 50, 60)
	if err != nil {
		t.Fatal(err)
	}
	if sub.String() != string(runes[50:110]) {
		t.Errorf("unexpected substring %q", sub.String())
	}
	rep, err := r.Report(3, 4)
	if err != nil || rep != "ße G" {
		t.Errorf("expected report 'ße G', got %q (%v)", rep, err)
	}
	if _, err = r.Report(r.Len()-1, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if rep, _ = r.Report(5, 0); rep != "" {
		t.Errorf("expected empty report, got %q", rep)
	}
}

func TestAppendPrepend(t *testing.T) {
	var r Rope
	if err := r.Append("World"); err != nil {
		t.Fatal(err)
	}
	if err := r.Prepend("Hello "); err != nil {
		t.Fatal(err)
	}
	if err := r.Append("!"); err != nil {
		t.Fatal(err)
	}
	if r.String() != "Hello World!" {
		t.Errorf("expected 'Hello World!', got %q", r.String())
	}
}

func TestSnapshotsArePersistent(t *testing.T) {
	r := FromString(strings.Repeat("abc", 100))
	snapshot := r
	if err := r.Insert(150, "XYZ"); err != nil {
		t.Fatal(err)
	}
	if err := r.Delete(0, 10); err != nil {
		t.Fatal(err)
	}
	if snapshot.String() != strings.Repeat("abc", 100) {
		t.Errorf("edits leaked into snapshot")
	}
	if r.Len() != 293 {
		t.Errorf("expected length 293, is %d", r.Len())
	}
}

func TestEditsKeepTreeBalanced(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	t.Cleanup(func() { gtrace.CoreTracer = gtrace.NoOpTrace })
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	var r Rope
	for i := 0; i < 500; i++ {
		// typing at the end produces a degenerate tree without balancing
		if err := r.Append(strings.Repeat("x", 50)); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Check(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		if err := r.Insert(uint64(i*7)%r.Len(), "ab"); err != nil {
			t.Fatal(err)
		}
	}
	if err := r.Check(); err != nil {
		t.Fatal(err)
	}
	t.Logf("height = %d with %d fragments", r.Height(), r.FragmentCount())
}

func TestRebalanceCompacts(t *testing.T) {
	var r Rope
	for i := 0; i < 200; i++ {
		if err := r.Insert(r.Len()/2, "ab"); err != nil {
			t.Fatal(err)
		}
		if err := r.Delete(r.Len()/3, r.Len()/3+1); err != nil {
			t.Fatal(err)
		}
	}
	before := r.String()
	cnt := r.FragmentCount()
	r.Rebalance()
	if r.String() != before {
		t.Errorf("rebalance changed the text")
	}
	if r.FragmentCount() > cnt {
		t.Errorf("rebalance increased fragment count from %d to %d", cnt, r.FragmentCount())
	}
	if err := r.Check(); err != nil {
		t.Error(err)
	}
	var v Rope
	v.Rebalance()
	if !v.IsVoid() {
		t.Errorf("rebalancing a void rope should keep it void")
	}
}

func TestRangesNearMaxUint(t *testing.T) {
	r := FromString("Hello World")
	const huge = math.MaxUint64
	if err := r.Update(huge, "ab"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Update at MaxUint64: expected ErrIndexOutOfRange, got %v", err)
	}
	if err := r.Update(10, "ab"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Update past end: expected ErrIndexOutOfRange, got %v", err)
	}
	if _, _, err := Cut(r, huge, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Cut at MaxUint64: expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := Substr(r, 2, huge); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Substr of length MaxUint64: expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := r.Report(huge, huge); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Report: expected ErrIndexOutOfRange, got %v", err)
	}
	if s, err := r.Report(6, 5); err != nil || s != "World" {
		t.Errorf("expected Report(6,5) = World, got %q, %v", s, err)
	}
	if r.String() != "Hello World" {
		t.Errorf("failed operations must not change the rope, have %q", r.String())
	}
}
