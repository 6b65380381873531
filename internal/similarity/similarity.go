// Package similarity scores self-similarity in numeric samples by
// comparing gradients across windows. Only first differences are
// compared, never raw values, and nothing is retained between calls:
// recognition without storage.
package similarity

const (
	// DefaultWindows is the number of scales a pattern must repeat on.
	DefaultWindows = 3

	similarityThreshold = 0.5
)

// Detect partitions samples into the given number of contiguous equal
// windows (trailing remainder discarded) and scores adjacent windows
// by the similarity of their internal gradients. It reports whether
// the average similarity clears the threshold, and the score (zero
// when it does not). Too few samples for the requested windows is a
// negative result, not an error.
func Detect(samples []float64, windows int) (bool, float64) {
	if windows <= 0 || len(samples) < windows {
		return false, 0.0
	}
	chunkSize := len(samples) / windows
	if chunkSize < 1 {
		return false, 0.0
	}

	chunks := make([][]float64, windows)
	for i := 0; i < windows; i++ {
		chunks[i] = samples[i*chunkSize : (i+1)*chunkSize]
	}

	var similarities []float64
	for i := 0; i < len(chunks)-1; i++ {
		if len(chunks[i]) != len(chunks[i+1]) {
			continue
		}
		similarities = append(similarities, gradientSimilarity(chunks[i], chunks[i+1]))
	}
	if len(similarities) == 0 {
		return false, 0.0
	}

	sum := 0.0
	for _, sim := range similarities {
		sum += sim
	}
	avg := sum / float64(len(similarities))
	if avg > similarityThreshold {
		return true, avg
	}
	return false, 0.0
}

func gradientSimilarity(a, b []float64) float64 {
	da := diff(a)
	db := diff(b)

	total := 0.0
	for i := range da {
		delta := da[i] - db[i]
		if delta < 0 {
			delta = -delta
		}
		total += delta
	}
	mean := total / float64(len(da))
	if mean > 1 {
		mean = 1
	}
	return 1.0 - mean
}

// diff returns first differences; a window too short to have any is
// treated as a single flat gradient.
func diff(values []float64) []float64 {
	if len(values) < 2 {
		return []float64{0}
	}
	out := make([]float64, len(values)-1)
	for i := 0; i < len(values)-1; i++ {
		out[i] = values[i+1] - values[i]
	}
	return out
}
