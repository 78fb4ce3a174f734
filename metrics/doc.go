/*
Package metrics provides some pre-manufactured metrics on texts.

Metrics are computed fragment by fragment on the leaves of a rope and
combined bottom-up. All positions handled by this package are rune
positions.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
