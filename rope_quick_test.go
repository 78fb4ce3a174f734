package rope

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"testing/quick"
	"time"
)

var quickConfig *quick.Config

func TestMain(m *testing.M) {
	seed := time.Now().Unix()
	if s, err := strconv.ParseInt(os.Getenv("QUICK_TEST_SEED"), 10, 64); err == nil {
		seed = s
	}
	fmt.Println("seed", seed)
	quickConfig = &quick.Config{
		MaxCount: 500,
		Rand:     rand.New(rand.NewSource(seed)),
	}
	os.Exit(m.Run())
}

// randLen clamps a random int to [0, n].
func randLen(i, n int) int {
	if i < 0 {
		i = -i
	}
	if i < 0 { // math.MinInt
		i = 0
	}
	return i % (n + 1)
}

// build assembles a rope by appending ss one after the other, exercising
// concatenation of trees of different shapes.
func build(ss []string) Rope {
	var r Rope
	for _, s := range ss {
		r = Concat(r, FromString(s))
	}
	return r
}

func TestQuickAppend(t *testing.T) {
	err := quick.CheckEqual(
		func(ss []string) string {
			return strings.Join(ss, "")
		},
		func(ss []string) string {
			r := build(ss)
			if err := r.Check(); err != nil {
				return err.Error()
			}
			return r.String()
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

func TestQuickSplit(t *testing.T) {
	err := quick.CheckEqual(
		func(ss []string, i int) [2]string {
			runes := []rune(strings.Join(ss, ""))
			i = randLen(i, len(runes))
			return [2]string{string(runes[:i]), string(runes[i:])}
		},
		func(ss []string, i int) [2]string {
			r := build(ss)
			i = randLen(i, int(r.Len()))
			left, right, err := Split(r, uint64(i))
			if err != nil {
				return [2]string{err.Error()}
			}
			if err := left.Check(); err != nil {
				return [2]string{err.Error()}
			}
			if err := right.Check(); err != nil {
				return [2]string{err.Error()}
			}
			return [2]string{left.String(), right.String()}
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

func TestQuickInsert(t *testing.T) {
	err := quick.CheckEqual(
		func(ss []string, ins string, i int) string {
			runes := []rune(strings.Join(ss, ""))
			i = randLen(i, len(runes))
			return string(runes[:i]) + ins + string(runes[i:])
		},
		func(ss []string, ins string, i int) string {
			r := build(ss)
			i = randLen(i, int(r.Len()))
			if err := r.Insert(uint64(i), ins); err != nil {
				return err.Error()
			}
			if err := r.Check(); err != nil {
				return err.Error()
			}
			return r.String()
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

func TestQuickDelete(t *testing.T) {
	err := quick.CheckEqual(
		func(ss []string, start, n int) string {
			runes := []rune(strings.Join(ss, ""))
			start = randLen(start, len(runes))
			n = randLen(n, len(runes)-start)
			return string(runes[:start]) + string(runes[start+n:])
		},
		func(ss []string, start, n int) string {
			r := build(ss)
			start = randLen(start, int(r.Len()))
			n = randLen(n, int(r.Len())-start)
			if err := r.Delete(uint64(start), uint64(start+n)); err != nil {
				return err.Error()
			}
			if err := r.Check(); err != nil {
				return err.Error()
			}
			return r.String()
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

func TestQuickUpdate(t *testing.T) {
	err := quick.CheckEqual(
		func(ss []string, upd string, i int) string {
			runes := []rune(strings.Join(ss, ""))
			u := []rune(upd)
			if len(u) > len(runes) {
				u = u[:len(runes)]
			}
			i = randLen(i, len(runes)-len(u))
			copy(runes[i:], u)
			return string(runes)
		},
		func(ss []string, upd string, i int) string {
			r := build(ss)
			u := []rune(upd)
			if len(u) > int(r.Len()) {
				u = u[:r.Len()]
			}
			i = randLen(i, int(r.Len())-len(u))
			if err := r.Update(uint64(i), string(u)); err != nil {
				return err.Error()
			}
			if err := r.Check(); err != nil {
				return err.Error()
			}
			return r.String()
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

func TestQuickLookup(t *testing.T) {
	err := quick.Check(
		func(ss []string, i int) bool {
			runes := []rune(strings.Join(ss, ""))
			r := build(ss)
			if len(runes) == 0 {
				_, err := r.Lookup(0)
				return err != nil
			}
			i = randLen(i, len(runes)-1)
			ch, err := r.Lookup(uint64(i))
			return err == nil && ch == runes[i]
		},
		quickConfig)
	if err != nil {
		t.Error(err)
	}
}

// A long sequence of random edits, checked against a slice of runes after
// every single step.
func TestRandomEditSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(quickConfig.Rand.Int63()))
	alphabet := []rune("abcdefäöü€😀\n ")
	randText := func() string {
		n := rnd.Intn(150)
		rs := make([]rune, n)
		for k := range rs {
			rs[k] = alphabet[rnd.Intn(len(alphabet))]
		}
		return string(rs)
	}
	var r Rope
	var model []rune
	for step := 0; step < 2000; step++ {
		switch op := rnd.Intn(3); {
		case op == 0 || len(model) == 0:
			s := randText()
			i := rnd.Intn(len(model) + 1)
			if err := r.Insert(uint64(i), s); err != nil {
				t.Fatalf("step %d: insert: %v", step, err)
			}
			model = append(model[:i], append([]rune(s), model[i:]...)...)
		case op == 1:
			i := rnd.Intn(len(model) + 1)
			j := i + rnd.Intn(len(model)-i+1)
			if err := r.Delete(uint64(i), uint64(j)); err != nil {
				t.Fatalf("step %d: delete: %v", step, err)
			}
			model = append(model[:i], model[j:]...)
		default:
			u := []rune(randText())
			if len(u) > len(model) {
				u = u[:len(model)]
			}
			i := rnd.Intn(len(model) - len(u) + 1)
			if err := r.Update(uint64(i), string(u)); err != nil {
				t.Fatalf("step %d: update: %v", step, err)
			}
			copy(model[i:], u)
		}
		if r.Len() != uint64(len(model)) {
			t.Fatalf("step %d: length %d, expected %d", step, r.Len(), len(model))
		}
		if err := r.Check(); err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if step%100 == 0 && r.String() != string(model) {
			t.Fatalf("step %d: text differs from model", step)
		}
	}
	if r.String() != string(model) {
		t.Fatalf("text differs from model")
	}
	t.Logf("final: %d runes, %d fragments, height %d", r.Len(), r.FragmentCount(), r.Height())
}
