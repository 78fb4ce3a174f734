/*
Package rope implements a balanced binary rope for large, frequently edited text.

Ropes

Ropes organize fragments of immutable text internally in a binary tree. This
speeds up editing operations like insertion and deletion, especially for long
texts, where a flat buffer would have to copy everything behind the edit
position. This package aims at applications which have to hold and edit
large amounts of text.

From Wikipedia:
In computer programming, a rope, or cord, is a data structure composed of
smaller strings that is used to efficiently store and manipulate a very long string.
For example, a text editing program may use a rope to represent the text being edited,
so that operations such as insertion, deletion, and random access can be
done efficiently. […] In summary, ropes are preferable when the data is large
and modified often.

_________________________________________________________________________

Positions

All positions, lengths and weights count Unicode code points (runes), not
bytes. Text handed to a rope must be valid UTF-8.

Tree structure

Leaves carry fragments of at most chunk.MaxBase bytes. Inner nodes carry exactly
two children, a weight and a height. The weight of an inner node is the number
of runes in its left subtree, the weight of a leaf is the number of runes of its
fragment. Inner nodes are kept AVL-balanced: the heights of two siblings never
differ by more than one, which bounds the height of a rope with n leaves by
1.44·log2(n+2). Concatenation restores the balance by rotating along the spine
it touches, and splitting is expressed in terms of concatenation.

Nodes are never modified after construction. Every editing operation builds new
nodes along the path it touches and shares everything else with the previous
version. Copying a Rope value therefore yields a cheap, immutable snapshot.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package rope

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// RopeError is an error type for the rope module
type RopeError string

func (e RopeError) Error() string {
	return string(e)
}

// ErrIndexOutOfRange is flagged whenever a rope position lies outside
// of the valid positions for an operation.
const ErrIndexOutOfRange = RopeError("index out of range")

// ErrInvalidRange is flagged for ranges [start, end) with start > end.
const ErrInvalidRange = RopeError("invalid range")

// ErrIllegalArguments is flagged whenever function parameters are invalid,
// e.g. text which is not valid UTF-8.
const ErrIllegalArguments = RopeError("illegal arguments")

// ErrRopeCompleted signals that a builder has already completed a rope and
// it's illegal to further add fragments.
const ErrRopeCompleted = RopeError("forbidden to add fragments; rope has been completed")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
