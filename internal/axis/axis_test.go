package axis

import (
	"math"
	"testing"
)

// TestFrequencyToRow_Endpoints verifies the canonical orientation: the lowest
// frequency at the bottom edge, the highest at the top edge and the geometric
// mean in the middle. A sign flip here would mirror every gridline.
func TestFrequencyToRow_Endpoints(t *testing.T) {
	testCases := []struct {
		name    string
		height  int
		minFreq float64
		maxFreq float64
	}{
		{name: "audible range", height: 1024, minFreq: 20, maxFreq: 20000},
		{name: "piano range", height: 600, minFreq: 27.5, maxFreq: 4186.01},
		{name: "tiny image", height: 2, minFreq: 100, maxFreq: 200},
		{name: "odd height", height: 333, minFreq: 55, maxFreq: 1760},
	}

	const epsilon = 1e-9

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bottom := FrequencyToRow(tc.minFreq, tc.height, tc.minFreq, tc.maxFreq)
			if math.Abs(bottom-float64(tc.height)) > epsilon {
				t.Errorf("minFreq row = %.9f, want %d", bottom, tc.height)
			}

			top := FrequencyToRow(tc.maxFreq, tc.height, tc.minFreq, tc.maxFreq)
			if math.Abs(top) > epsilon {
				t.Errorf("maxFreq row = %.9f, want 0", top)
			}

			mid := FrequencyToRow(math.Sqrt(tc.minFreq*tc.maxFreq), tc.height, tc.minFreq, tc.maxFreq)
			if math.Abs(mid-float64(tc.height)/2) > epsilon {
				t.Errorf("geometric mean row = %.9f, want %.1f", mid, float64(tc.height)/2)
			}
		})
	}
}

// TestFrequencyToRow_Monotonic verifies that higher frequencies always sit
// higher on the image (smaller row).
func TestFrequencyToRow_Monotonic(t *testing.T) {
	prev := math.Inf(1)
	for f := 20.0; f <= 20000; f *= 1.01 {
		row := FrequencyToRow(f, 800, 20, 20000)
		if row >= prev {
			t.Fatalf("row for %.2f Hz (%.4f) not above row for lower frequency (%.4f)", f, row, prev)
		}
		prev = row
	}
}

// TestRowToFrequency_RoundTrip verifies rowToFrequency(frequencyToRow(f)) ≈ f
// within one pixel's worth of frequency ratio.
func TestRowToFrequency_RoundTrip(t *testing.T) {
	const (
		height  = 512
		minFreq = 20.0
		maxFreq = 20000.0
	)

	// One row spans this frequency ratio
	pixelRatio := math.Pow(maxFreq/minFreq, 1.0/float64(height-1))

	for _, f := range []float64{21, 55, 110, 261.63, 440, 1000, 4186, 12000, 19999} {
		row := FrequencyToRow(f, height, minFreq, maxFreq)
		back := RowToFrequency(row, height, minFreq, maxFreq)

		ratio := back / f
		if ratio < 1 {
			ratio = 1 / ratio
		}
		if ratio > pixelRatio {
			t.Errorf("%.2f Hz -> row %.3f -> %.2f Hz (ratio %.5f exceeds one pixel %.5f)",
				f, row, back, ratio, pixelRatio)
		}
	}
}

// TestRowToFrequency_Edges verifies the sampling grid covers the full range.
func TestRowToFrequency_Edges(t *testing.T) {
	const height = 100

	if got := RowToFrequency(height-1, height, 20, 20000); math.Abs(got-20) > 1e-9 {
		t.Errorf("bottom row frequency = %.9f, want 20", got)
	}
	if got := RowToFrequency(0, height, 20, 20000); math.Abs(got-20000) > 1e-6 {
		t.Errorf("top row frequency = %.9f, want 20000", got)
	}
}

// TestBinForFrequency verifies rounding and clamping into the spectrum.
func TestBinForFrequency(t *testing.T) {
	const (
		numBins    = 1025 // 2048-point frame
		sampleRate = 44100
	)

	testCases := []struct {
		name string
		freq float64
		want int
	}{
		{name: "DC", freq: 0, want: 0},
		{name: "A4", freq: 440, want: 20},
		{name: "Nyquist clamps to last bin", freq: 22050, want: numBins - 1},
		{name: "above Nyquist", freq: 30000, want: numBins - 1},
		{name: "negative clamps to zero", freq: -10, want: 0},
		{name: "1 kHz", freq: 1000, want: 46},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BinForFrequency(tc.freq, numBins, sampleRate); got != tc.want {
				t.Errorf("BinForFrequency(%.1f) = %d, want %d", tc.freq, got, tc.want)
			}
		})
	}
}
