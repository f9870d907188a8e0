package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// sine generates n samples of a unit sine at freq Hz
func sine(freq float64, sampleRate, n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return samples
}

// writeWAV writes a 16-bit PCM WAV into the test's temp dir. Each entry in
// channels is one channel; all must have equal length.
func writeWAV(t *testing.T, name string, sampleRate int, channels ...[]float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	numChans := len(channels)
	enc := wav.NewEncoder(f, sampleRate, 16, numChans, 1)

	data := make([]int, len(channels[0])*numChans)
	for i := range channels[0] {
		for ch := 0; ch < numChans; ch++ {
			data[i*numChans+ch] = int(math.Round(channels[ch][i] * 32767))
		}
	}

	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: numChans, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", path, err)
	}

	return path
}

// peakBin returns the index of the largest value in row
func peakBin(row []float64) int {
	best := 0
	for k, v := range row {
		if v > row[best] {
			best = k
		}
	}
	return best
}
