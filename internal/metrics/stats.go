package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the middle element of values, which should have odd length
// (decision scores take the median of three volumes). Even-length input
// yields the lower of the two middle elements, the empirical 0.5 quantile.
// Returns 0 for empty input. values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// CountPositives returns the number of entries equal to 1.
func CountPositives(labels []int) int {
	n := 0
	for _, l := range labels {
		if l == 1 {
			n++
		}
	}
	return n
}
