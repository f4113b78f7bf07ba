package report

import "sort"

// summarize returns mean, median and max of a sample. Zeroes for an empty
// sample.
func summarize(values []float64) (mean, median, max float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean = sum / float64(len(sorted))

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	max = sorted[len(sorted)-1]
	return mean, median, max
}
