package metrics

// --- Line count metric -----------------------------------------------------

// Lines is the value of a line metric on a segment of text.
type Lines struct {
	runes  uint64   // length of the segment
	breaks []uint64 // positions of newline characters, relative to the segment
}

// LineMetric is a rope.Metric that finds the lines of a text, delimited by
// newline characters. Multiple consecutive newlines will be counted as
// multiple empty lines. A trailing newline does not open a new line.
type LineMetric struct{}

var _ CountingMetric[Lines] = LineMetric{}
var _ ScanningMetric[Lines] = LineMetric{}

// LineCount creates a line metric.
func LineCount() LineMetric {
	return LineMetric{}
}

// Apply is part of interface rope.Metric.
func (LineMetric) Apply(frag string) Lines {
	v := Lines{}
	for _, r := range frag {
		if r == '\n' {
			v.breaks = append(v.breaks, v.runes)
		}
		v.runes++
	}
	return v
}

// Combine is part of interface rope.Metric.
func (LineMetric) Combine(left, right Lines) Lines {
	v := Lines{
		runes:  left.runes + right.runes,
		breaks: make([]uint64, 0, len(left.breaks)+len(right.breaks)),
	}
	v.breaks = append(v.breaks, left.breaks...)
	for _, b := range right.breaks {
		v.breaks = append(v.breaks, b+left.runes)
	}
	tracer().Debugf("lines: combined %d+%d newlines", len(left.breaks), len(right.breaks))
	return v
}

// Count returns the number of lines.
func (LineMetric) Count(v Lines) int {
	n := len(v.breaks)
	if v.runes > 0 && (n == 0 || v.breaks[n-1] != v.runes-1) {
		n++ // unterminated last line
	}
	return n
}

// Locations returns the spans of all lines, excluding the terminating newline.
func (LineMetric) Locations(v Lines) [][2]uint64 {
	locs := make([][2]uint64, 0, len(v.breaks)+1)
	var start uint64
	for _, b := range v.breaks {
		locs = append(locs, [2]uint64{start, b})
		start = b + 1
	}
	if start < v.runes {
		locs = append(locs, [2]uint64{start, v.runes})
	}
	return locs
}
