package similarity

import (
	"math"
	"testing"
)

func TestDetectRepeatingGradient(t *testing.T) {
	// Three windows with identical internal gradients at shifted offsets.
	pattern := []float64{0.1, 0.3, 0.5, 0.2, 0.4, 0.6, 0.15, 0.35, 0.55}
	has, score := Detect(pattern, DefaultWindows)
	if !has {
		t.Fatalf("expected self-similarity in repeating gradient pattern")
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0, got %f", score)
	}
}

func TestDetectDissimilarGradients(t *testing.T) {
	pattern := []float64{0, 1, 0, 1, 0, 0, 0, 0, 5, -5, 5, -5}
	has, score := Detect(pattern, 3)
	if has || score != 0 {
		t.Fatalf("expected (false, 0), got (%v, %f)", has, score)
	}
}

func TestDetectInsufficientData(t *testing.T) {
	cases := [][]float64{
		nil,
		{},
		{0.1},
		{0.1, 0.2},
	}
	for _, samples := range cases {
		has, score := Detect(samples, 3)
		if has || score != 0 {
			t.Fatalf("samples %v: expected (false, 0), got (%v, %f)", samples, has, score)
		}
	}
}

func TestDetectNonPositiveWindows(t *testing.T) {
	has, score := Detect([]float64{1, 2, 3}, 0)
	if has || score != 0 {
		t.Fatalf("expected (false, 0) for zero windows, got (%v, %f)", has, score)
	}
}

func TestDetectDiscardsTrailingRemainder(t *testing.T) {
	// 10 samples over 3 windows: chunk size 3, last sample ignored.
	// The final value is wild but outside any window.
	pattern := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 1000}
	has, score := Detect(pattern, 3)
	if !has {
		t.Fatalf("expected similarity, trailing remainder should be discarded")
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected score 1.0, got %f", score)
	}
}

func TestDetectSingleElementWindows(t *testing.T) {
	// Windows of one element have flat gradients, which always match.
	has, score := Detect([]float64{5, 9, 2}, 3)
	if !has || math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected (true, 1.0), got (%v, %f)", has, score)
	}
}
