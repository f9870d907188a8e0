package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/linuxmatters/pitchgram/internal/config"
)

// ErrEmptyInput is returned when there are no samples to analyse
var ErrEmptyInput = errors.New("no audio samples to analyse")

// Spectrogram holds log-magnitude spectra in time order.
// Frames[t][k] is bin k of the frame starting at sample t*HopSize.
type Spectrogram struct {
	Frames     [][]float64
	SampleRate int
	FrameSize  int
	HopSize    int
}

// NumFrames returns the number of time frames
func (s *Spectrogram) NumFrames() int {
	return len(s.Frames)
}

// NumBins returns the number of frequency bins per frame, or 0 without frames
func (s *Spectrogram) NumBins() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return len(s.Frames[0])
}

// FramesPerSecond returns the analysis frame rate
func (s *Spectrogram) FramesPerSecond() float64 {
	return float64(s.SampleRate) / float64(s.HopSize)
}

// Analyze slices samples into overlapping Hann-windowed frames and returns
// their log-magnitude spectra. Input shorter than one frame yields a
// spectrogram with zero frames rather than an error.
func Analyze(samples []float64, sampleRate int, cfg config.AnalysisConfig) (*Spectrogram, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate %d must be positive", config.ErrInvalidConfiguration, sampleRate)
	}

	numFrames := 0
	if len(samples) >= cfg.FrameSize {
		numFrames = (len(samples)-cfg.FrameSize)/cfg.HopSize + 1
	}

	sg := &Spectrogram{
		Frames:     make([][]float64, numFrames),
		SampleRate: sampleRate,
		FrameSize:  cfg.FrameSize,
		HopSize:    cfg.HopSize,
	}

	workers := cfg.Workers
	if workers > numFrames {
		workers = numFrames
	}

	if workers <= 1 {
		analyzeFrames(samples, sg, 0, 1)
		return sg, nil
	}

	// Worker w owns frames w, w+workers, ... so each row is written exactly once
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			analyzeFrames(samples, sg, first, workers)
		}(w)
	}
	wg.Wait()

	return sg, nil
}

// analyzeFrames fills sg.Frames[first], sg.Frames[first+stride], ...
func analyzeFrames(samples []float64, sg *Spectrogram, first, stride int) {
	processor := NewProcessor(sg.FrameSize)
	numBins := processor.NumBins()

	for i := first; i < len(sg.Frames); i += stride {
		offset := i * sg.HopSize
		row := make([]float64, numBins)
		processor.Process(samples[offset:offset+sg.FrameSize], row)
		sg.Frames[i] = row
	}
}
