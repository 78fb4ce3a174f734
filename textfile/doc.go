/*
Package textfile provides API helpers to load UTF-8 text files as ropes.

Files are read in fragments by a bounded group of concurrent readers. The
fragments are stitched together in file order, respecting rune boundaries,
and progress is broadcast to subscribers while loading is under way.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
