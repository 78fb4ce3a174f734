package chunk

import (
	"math/bits"
	"unicode/utf8"
)

// Bitmap indexes byte-local properties inside a chunk.
//
// Bit i corresponds to byte offset i in chunk-local coordinates.
type Bitmap = uint64

// MaxBase is the maximum chunk payload length in bytes.
const MaxBase = 64

// Chunk is a leaf fragment of a rope: at most MaxBase bytes of UTF-8 text,
// together with bitmaps marking rune starts and newlines.
//
// Chunks are values and immutable by convention: every editing operation
// returns a new Chunk. Offsets taken by the methods of Chunk are rune
// offsets unless stated otherwise.
type Chunk struct {
	starts   Bitmap
	newlines Bitmap
	text     [MaxBase]byte
	n        uint8
}

// New creates a chunk from UTF-8 text.
//
// Returns an error if the text is not valid UTF-8 or exceeds MaxBase bytes.
func New(text string) (Chunk, error) {
	if !utf8.ValidString(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	var c Chunk
	copy(c.text[:], text)
	c.n = uint8(len(text))
	for i := range text { // ranging a string visits rune starts
		c.starts |= bit(i)
		if text[i] == '\n' {
			c.newlines |= bit(i)
		}
	}
	return c, nil
}

// NewBytes creates a chunk from UTF-8 bytes. The bytes are copied.
//
// Callers splitting larger input must cut at rune boundaries only; NewBytes
// rejects slices which start or end inside a multi-byte rune.
func NewBytes(text []byte) (Chunk, error) {
	if !utf8.Valid(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	return New(string(text))
}

// Len returns the text length in bytes.
func (c Chunk) Len() int {
	return int(c.n)
}

// RuneCount returns the number of runes in the chunk.
func (c Chunk) RuneCount() int {
	return bits.OnesCount64(c.starts)
}

// IsEmpty reports whether the chunk has no bytes.
func (c Chunk) IsEmpty() bool {
	return c.n == 0
}

// String returns the chunk text.
func (c Chunk) String() string {
	return string(c.text[:c.n])
}

// Bytes returns a copied byte slice of the chunk text.
func (c Chunk) Bytes() []byte {
	return append([]byte(nil), c.text[:c.n]...)
}

// Starts returns the rune-start bitmap.
func (c Chunk) Starts() Bitmap {
	return c.starts
}

// Newlines returns the newline bitmap.
func (c Chunk) Newlines() Bitmap {
	return c.newlines
}

// ByteOffset maps a rune offset to its byte offset within the chunk.
// r == RuneCount() maps to Len().
func (c Chunk) ByteOffset(r int) (int, error) {
	if r < 0 || r > c.RuneCount() {
		return 0, ErrIndexOutOfBounds
	}
	if r == c.RuneCount() {
		return c.Len(), nil
	}
	m := c.starts
	for ; r > 0; r-- {
		m &= m - 1 // drop lowest rune start
	}
	return bits.TrailingZeros64(m), nil
}

// RuneAt returns the rune at rune offset r.
func (c Chunk) RuneAt(r int) (rune, error) {
	if r < 0 || r >= c.RuneCount() {
		return utf8.RuneError, ErrIndexOutOfBounds
	}
	b, _ := c.ByteOffset(r)
	ch, _ := utf8.DecodeRune(c.text[b:c.n])
	return ch, nil
}

// Slice returns the sub-chunk for runes [i, j).
func (c Chunk) Slice(i, j int) (Chunk, error) {
	if i < 0 || j < i || j > c.RuneCount() {
		return Chunk{}, ErrIndexOutOfBounds
	}
	start, _ := c.ByteOffset(i)
	end, _ := c.ByteOffset(j)
	m := rangeMask(start, end)
	var out Chunk
	copy(out.text[:], c.text[start:end])
	out.n = uint8(end - start)
	out.starts = (c.starts & m) >> uint(start)
	out.newlines = (c.newlines & m) >> uint(start)
	return out, nil
}

// SplitAt splits a chunk into two chunks before rune offset r.
func (c Chunk) SplitAt(r int) (Chunk, Chunk, error) {
	left, err := c.Slice(0, r)
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	right, err := c.Slice(r, c.RuneCount())
	if err != nil {
		return Chunk{}, Chunk{}, err
	}
	return left, right, nil
}

// Append returns a new chunk with other appended to c.
//
// The boolean is false if the result would exceed MaxBase; in that case the
// original chunk is returned unchanged.
func (c Chunk) Append(other Chunk) (Chunk, bool) {
	if other.IsEmpty() {
		return c, true
	}
	base := c.Len()
	total := base + other.Len()
	if total > MaxBase {
		return c, false
	}
	out := c
	shift := uint(base)
	out.starts |= other.starts << shift
	out.newlines |= other.newlines << shift
	copy(out.text[base:total], other.text[:other.n])
	out.n = uint8(total)
	return out, true
}

// --- Bitmap helpers --------------------------------------------------------

func bit(offset int) Bitmap {
	if offset < 0 || offset >= MaxBase {
		return 0
	}
	return Bitmap(1) << uint(offset)
}

func prefixMask(offset int) Bitmap {
	switch {
	case offset <= 0:
		return 0
	case offset >= MaxBase:
		return ^Bitmap(0)
	default:
		return (Bitmap(1) << uint(offset)) - 1
	}
}

func rangeMask(start, end int) Bitmap {
	return prefixMask(end) &^ prefixMask(start)
}

// CompleteRunes returns the length of the longest prefix of b which does not
// end inside an incomplete multi-byte rune. Text read in blocks is cut there
// and the tail carried over to the next block.
func CompleteRunes(b []byte) int {
	for i := len(b) - 1; i >= 0 && i > len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}
