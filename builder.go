package rope

import (
	"fmt"
	"unicode/utf8"

	"github.com/npillmayer/rope/chunk"
)

// Builder incrementally stages text and finalizes it into a Rope.
//
// Builder collects UTF-8 text as chunks and materializes the rope only when
// Rope() is called. The rope is built bottom-up as a perfectly balanced tree.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	// front keeps prepended chunks in reverse logical order.
	front []chunk.Chunk
	// back keeps appended chunks in logical order.
	back []chunk.Chunk

	done  bool
	dirty bool
	rope  Rope
}

// NewBuilder creates a new and empty rope builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Rope returns the rope built from all staged fragments.
//
// It is illegal to continue adding fragments after Rope has been called, but
// Rope may be called multiple times.
func (b *Builder) Rope() Rope {
	if b == nil {
		return Rope{}
	}
	if b.dirty {
		b.rope = Rope{root: buildBalanced(b.orderedChunks())}
		b.dirty = false
	}
	b.done = true
	if b.rope.IsVoid() {
		T().Debugf("rope builder: rope is void")
	}
	return b.rope
}

// Reset drops the staged build and prepares the builder for a fresh build.
func (b *Builder) Reset() {
	b.front = nil
	b.back = nil
	b.done = false
	b.dirty = false
	b.rope = Rope{}
}

// AppendString appends UTF-8 text to the staged build.
func (b *Builder) AppendString(text string) error {
	return b.AppendBytes([]byte(text))
}

// PrependString prepends UTF-8 text to the staged build.
func (b *Builder) PrependString(text string) error {
	return b.PrependBytes([]byte(text))
}

// AppendBytes appends UTF-8 bytes to the staged build.
func (b *Builder) AppendBytes(text []byte) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRopeCompleted
	}
	chunks, err := splitToChunks(text)
	if err != nil {
		return err
	}
	for _, c := range chunks {
		b.appendChunk(c)
	}
	return nil
}

// PrependBytes prepends UTF-8 bytes to the staged build.
func (b *Builder) PrependBytes(text []byte) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRopeCompleted
	}
	chunks, err := splitToChunks(text)
	if err != nil {
		return err
	}
	// front is stored in reverse logical order.
	for i := len(chunks) - 1; i >= 0; i-- {
		b.front = append(b.front, chunks[i])
	}
	if len(chunks) > 0 {
		b.dirty = true
	}
	return nil
}

// AppendChunk appends a pre-built chunk.
func (b *Builder) AppendChunk(c chunk.Chunk) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRopeCompleted
	}
	b.appendChunk(c)
	return nil
}

// AppendRope appends the fragments of another rope.
func (b *Builder) AppendRope(r Rope) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if b.done {
		return ErrRopeCompleted
	}
	for c := range r.Chunks() {
		b.appendChunk(c)
	}
	return nil
}

// appendChunk stages c, merging it into the last staged chunk if it fits.
func (b *Builder) appendChunk(c chunk.Chunk) {
	if c.IsEmpty() {
		return
	}
	b.dirty = true
	if len(b.back) > 0 {
		last := len(b.back) - 1
		if merged, ok := b.back[last].Append(c); ok {
			b.back[last] = merged
			return
		}
	}
	b.back = append(b.back, c)
}

func (b *Builder) orderedChunks() []chunk.Chunk {
	total := len(b.front) + len(b.back)
	if total == 0 {
		return nil
	}
	out := make([]chunk.Chunk, 0, total)
	for i := len(b.front) - 1; i >= 0; i-- {
		out = append(out, b.front[i])
	}
	out = append(out, b.back...)
	return out
}

// --- Tree construction -----------------------------------------------------

// buildTree creates a balanced tree for a string. The empty string results
// in a nil tree.
func buildTree(s string) (*node, error) {
	chunks, err := splitToChunks([]byte(s))
	if err != nil {
		return nil, err
	}
	return buildBalanced(chunks), nil
}

// buildBalanced creates a perfectly balanced tree with the given chunks as
// leaves, in order.
func buildBalanced(chunks []chunk.Chunk) *node {
	if len(chunks) == 0 {
		return nil
	}
	leaves := make([]*node, 0, len(chunks))
	for _, c := range chunks {
		if !c.IsEmpty() {
			leaves = append(leaves, makeLeaf(c))
		}
	}
	if len(leaves) == 0 {
		return nil
	}
	root, _ := buildFromLeaves(leaves)
	return root
}

// buildFromLeaves halves the leaf sequence recursively. Sibling subtrees differ
// by at most one leaf, so their heights differ by at most one. It returns the
// subtree together with its length.
func buildFromLeaves(leaves []*node) (*node, uint64) {
	if len(leaves) == 1 {
		return leaves[0], leaves[0].weight
	}
	mid := len(leaves) / 2
	left, lw := buildFromLeaves(leaves[:mid])
	right, rw := buildFromLeaves(leaves[mid:])
	return makeInner(left, right, lw), lw + rw
}

// splitToChunks splits UTF-8 bytes into chunk-sized pieces.
//
// Boundaries are adjusted so no chunk starts or ends in the middle of a UTF-8
// rune.
func splitToChunks(text []byte) ([]chunk.Chunk, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, fmt.Errorf("%w: %w", ErrIllegalArguments, chunk.ErrInvalidUTF8)
	}
	parts := make([]chunk.Chunk, 0, 1+len(text)/chunk.MaxBase)
	for i := 0; i < len(text); {
		end := i + chunk.MaxBase
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
		}
		c, err := chunk.NewBytes(text[i:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, c)
		i = end
	}
	return parts, nil
}
