package chunk

import "math/bits"

// Summary aggregates text metrics of a chunk or of a sequence of chunks.
type Summary struct {
	Bytes uint64
	Chars uint64
	Lines uint64
}

// Summary returns aggregate metrics for this chunk.
func (c Chunk) Summary() Summary {
	mask := prefixMask(c.Len())
	return Summary{
		Bytes: uint64(c.n),
		Chars: uint64(bits.OnesCount64(c.starts & mask)),
		Lines: uint64(bits.OnesCount64(c.newlines & mask)),
	}
}

// Add combines two summaries. Summary{} is the neutral element.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}
