package audio

import (
	"math"

	"github.com/argusdusty/gofft"
)

// LogEpsilon keeps 20*log10(magnitude) finite for silent bins
const LogEpsilon = 1e-6

// ApplyHanning applies a Hann window to the input data
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	if n < 2 {
		copy(windowed, data)
		return windowed
	}
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// Processor computes the log-magnitude spectrum of one frame.
// A Processor reuses its buffers and must not be shared between goroutines.
type Processor struct {
	size   int
	window []float64
	buf    []complex128
	radix2 bool
}

// NewProcessor creates a processor for frames of frameSize samples
func NewProcessor(frameSize int) *Processor {
	ones := make([]float64, frameSize)
	for i := range ones {
		ones[i] = 1
	}

	return &Processor{
		size:   frameSize,
		window: ApplyHanning(ones),
		buf:    make([]complex128, frameSize),
		radix2: frameSize > 0 && frameSize&(frameSize-1) == 0,
	}
}

// NumBins returns the number of non-redundant bins, frameSize/2 + 1
func (p *Processor) NumBins() int {
	return p.size/2 + 1
}

// Process windows frame, transforms it and writes 20*log10(|X[k]|+eps)
// for k in 0..frameSize/2 into out. len(frame) must equal the frame size
// and len(out) must be at least NumBins().
func (p *Processor) Process(frame []float64, out []float64) {
	for i, s := range frame[:p.size] {
		p.buf[i] = complex(s*p.window[i], 0)
	}

	if p.radix2 {
		// Length is a power of two, so FFT cannot fail
		_ = gofft.FFT(p.buf)
	} else {
		p.buf = dft(p.buf)
	}

	for k := 0; k < p.NumBins(); k++ {
		magnitude := math.Hypot(real(p.buf[k]), imag(p.buf[k]))
		out[k] = 20 * math.Log10(magnitude+LogEpsilon)
	}
}

// dft is the direct transform for frame sizes gofft cannot handle
func dft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var re, im float64
		for t := 0; t < n; t++ {
			angle := -2 * math.Pi * float64(k*t%n) / float64(n)
			s, c := math.Sincos(angle)
			re += real(x[t])*c - imag(x[t])*s
			im += real(x[t])*s + imag(x[t])*c
		}
		out[k] = complex(re, im)
	}
	return out
}
