package metrics

import (
	"bufio"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/rope"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"
)

var setupGraphemes sync.Once

// WrapConfig configures line wrapping.
type WrapConfig struct {
	LineWidth int           // maximum display width of a line, in terminal cells
	Context   *uax11.Context // East Asian width context; defaults to uax11.LatinContext
}

/*
Wikipedia:

	1. |  SpaceLeft := LineWidth
	2. |  for each Word in Text
	3. |      if (Width(Word) + SpaceWidth) > SpaceLeft
	4. |           insert line break before Word in Text
	5. |           SpaceLeft := LineWidth - Width(Word)
	6. |      else
	7. |           SpaceLeft := SpaceLeft - (Width(Word) + SpaceWidth)
*/

// Wrap breaks a text into lines of at most config.LineWidth display cells,
// using a first-fit strategy at UAX#14 line break opportunities. Newlines
// force a break.
//
// Wrap returns the rune positions at which lines end, in increasing order.
// The last entry is the length of the text. A segment wider than the line
// width is put on a line of its own and overflows.
func Wrap(text *rope.Rope, config WrapConfig) []uint64 {
	if text.IsVoid() || config.LineWidth <= 0 {
		return nil
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(text.Reader()))
	breaks := make([]uint64, 0, 20)
	var pos, linestart uint64
	spaceleft := config.LineWidth
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		// trailing white space may hang over the right margin
		word := strings.TrimRight(frag, " \t\r\n")
		fragwidth := uax11.StringWidth(grapheme.StringFromString(frag), context)
		wordwidth := uax11.StringWidth(grapheme.StringFromString(word), context)
		if wordwidth > spaceleft && pos > linestart {
			tracer().Debugf("wrap: break @ %d", pos)
			breaks = append(breaks, pos)
			linestart = pos
			spaceleft = config.LineWidth
		}
		spaceleft -= fragwidth
		pos += uint64(utf8.RuneCountInString(frag))
		if strings.HasSuffix(frag, "\n") {
			tracer().Debugf("wrap: newline @ %d", pos)
			breaks = append(breaks, pos)
			linestart = pos
			spaceleft = config.LineWidth
		}
	}
	if pos > linestart {
		breaks = append(breaks, pos)
	}
	return breaks
}

// WrapLines wraps a text and returns the lines as ropes, sharing storage
// with text.
func WrapLines(text *rope.Rope, config WrapConfig) ([]rope.Rope, error) {
	breaks := Wrap(text, config)
	lines := make([]rope.Rope, 0, len(breaks))
	var start uint64
	for _, end := range breaks {
		line, err := rope.Substr(*text, start, end-start)
		if err != nil {
			tracer().Errorf("wrap: %v", err)
			return nil, err
		}
		lines = append(lines, line)
		start = end
	}
	return lines, nil
}
