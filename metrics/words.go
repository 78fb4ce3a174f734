package metrics

import (
	"unicode"

	"github.com/npillmayer/rope"
)

// Span is a rune-range descriptor inside a rope snapshot.
//
// Pos is the start rune position, Len is the span length in runes.
type Span struct {
	Pos uint64
	Len uint64
}

// WordsValue is the result of a word metric on a segment of text.
type WordsValue struct {
	Spans        []Span
	runes        uint64
	openL, openR bool // segment starts/ends within a word
}

// WordCount returns the number of recognized words.
func (v WordsValue) WordCount() int {
	return len(v.Spans)
}

// WordsMetric finds words, i.e. maximal runs of non-space characters.
type WordsMetric struct{}

var _ CountingMetric[WordsValue] = WordsMetric{}
var _ ScanningMetric[WordsValue] = WordsMetric{}

// Words creates a word metric.
func Words() WordsMetric {
	return WordsMetric{}
}

// Apply is part of interface rope.Metric.
func (WordsMetric) Apply(frag string) WordsValue {
	v := WordsValue{Spans: make([]Span, 0, 8)}
	inWord := false
	for _, r := range frag {
		if unicode.IsSpace(r) {
			inWord = false
		} else {
			if !inWord {
				v.Spans = append(v.Spans, Span{Pos: v.runes})
				if v.runes == 0 {
					v.openL = true
				}
			}
			v.Spans[len(v.Spans)-1].Len++
			inWord = true
		}
		v.runes++
	}
	v.openR = inWord
	return v
}

// Combine is part of interface rope.Metric. A word touching the boundary
// between left and right from both sides is joined into a single word.
func (WordsMetric) Combine(left, right WordsValue) WordsValue {
	if left.runes == 0 {
		return right
	}
	if right.runes == 0 {
		return left
	}
	v := WordsValue{
		Spans: make([]Span, 0, len(left.Spans)+len(right.Spans)),
		runes: left.runes + right.runes,
		openL: left.openL,
		openR: right.openR,
	}
	v.Spans = append(v.Spans, left.Spans...)
	rspans := right.Spans
	if left.openR && right.openL {
		tracer().Debugf("words: joining word across fragment boundary at %d", left.runes)
		v.Spans[len(v.Spans)-1].Len += rspans[0].Len
		rspans = rspans[1:]
	}
	for _, s := range rspans {
		v.Spans = append(v.Spans, Span{Pos: s.Pos + left.runes, Len: s.Len})
	}
	return v
}

// Count returns the number of words.
func (WordsMetric) Count(v WordsValue) int {
	return v.WordCount()
}

// Locations returns [start, end) of every word.
func (WordsMetric) Locations(v WordsValue) [][2]uint64 {
	locs := make([][2]uint64, len(v.Spans))
	for k, s := range v.Spans {
		locs[k] = [2]uint64{s.Pos, s.Pos + s.Len}
	}
	return locs
}

// Materialize scans [i,j) for words and returns word spans plus a
// materialized rope.
//
// Spans carry positions relative to the start of text. Materialization
// concatenates all recognized words in logical order and omits non-word
// separators.
func (m WordsMetric) Materialize(text *rope.Rope, i, j uint64) (WordsValue, rope.Rope, error) {
	if text.IsVoid() && i == 0 && j == 0 {
		return WordsValue{}, rope.Rope{}, nil
	}
	value, err := rope.ApplyMetric(text, i, j, m)
	if err != nil {
		return WordsValue{}, rope.Rope{}, err
	}
	for k := range value.Spans {
		value.Spans[k].Pos += i
	}
	if len(value.Spans) == 0 {
		return value, rope.Rope{}, nil
	}
	b := rope.NewBuilder()
	for _, span := range value.Spans {
		word, err := rope.Substr(*text, span.Pos, span.Len)
		if err != nil {
			return WordsValue{}, rope.Rope{}, err
		}
		if err = b.AppendRope(word); err != nil {
			return WordsValue{}, rope.Rope{}, err
		}
	}
	return value, b.Rope(), nil
}
