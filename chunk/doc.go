/*
Package chunk provides the leaf fragments of a rope.

A chunk holds up to MaxBase bytes of UTF-8 text. Two bitmaps index the
positions of rune starts and newlines, which makes rune offset arithmetic
inside a leaf a matter of a few bit operations.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package chunk
