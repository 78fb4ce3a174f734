package metrics

import (
	"fmt"

	"github.com/npillmayer/rope"
)

// CountingMetric is a type for metrics that count items in text. Possible
// items may be lines, words, emojis, …
type CountingMetric[V any] interface {
	rope.Metric[V]
	Count(V) int
}

// Count applies a counting metric to a text.
func Count[V any](text *rope.Rope, i, j uint64, metric CountingMetric[V]) (int, error) {
	value, err := rope.ApplyMetric(text, i, j, metric)
	if err != nil {
		return -1, fmt.Errorf("metrics.Count could not be applied: %w", err)
	}
	return metric.Count(value), nil
}

// ---------------------------------------------------------------------------

// A ScanningMetric searches a text for items (such as lines, words, emojis, …)
// and returns their locations as [start, end) rune positions.
type ScanningMetric[V any] interface {
	rope.Metric[V]
	Locations(V) [][2]uint64
}

// Find applies a scanning metric to a text. Locations are relative to the
// start of the text, not to i.
func Find[V any](text *rope.Rope, i, j uint64, metric ScanningMetric[V]) ([][2]uint64, error) {
	value, err := rope.ApplyMetric(text, i, j, metric)
	if err != nil {
		return [][2]uint64{}, fmt.Errorf("metrics.Find could not be applied: %w", err)
	}
	locs := metric.Locations(value)
	for k := range locs {
		locs[k][0] += i
		locs[k][1] += i
	}
	return locs, nil
}
