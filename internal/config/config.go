package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is returned when analysis or render settings are out of range
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrUsage is returned for contradictory command-line combinations
var ErrUsage = errors.New("usage error")

// Analysis settings
const (
	FrameSize = 2048
	HopSize   = 512
)

// Visualisation settings
const (
	SamplesPerSecond = 100     // Image columns per second of audio
	MinFrequency     = 20.0    // Bottom of the frequency axis (Hz)
	MaxFrequency     = 20000.0 // Top of the frequency axis (Hz)
	Height           = 1024    // Spectrogram height in pixels
	LabelMargin      = 50      // Width of the pitch label margin on the left
)

// Appearance
const (
	// Margin background, white as in a printed score
	MarginColorR = 255
	MarginColorG = 255
	MarginColorB = 255

	// Gridlines and note labels
	GridColorR = 0
	GridColorG = 0
	GridColorB = 0

	LabelFontSize = 9.0 // Points at 72 DPI
	ColorMap      = "jet"
	Annotation    = "white"
)

// AnalysisConfig controls the short-time Fourier analysis
type AnalysisConfig struct {
	FrameSize int // Samples per frame, power of two recommended
	HopSize   int // Samples between frame starts, 1..FrameSize
	Workers   int // Goroutines computing frames; <= 1 runs inline
}

// DefaultAnalysisConfig returns the standard 2048/512 analysis
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		FrameSize: FrameSize,
		HopSize:   HopSize,
		Workers:   1,
	}
}

// Validate checks frame and hop sizes
func (c AnalysisConfig) Validate() error {
	if c.FrameSize < 2 {
		return fmt.Errorf("%w: frame size %d must be at least 2", ErrInvalidConfiguration, c.FrameSize)
	}
	if c.HopSize < 1 || c.HopSize > c.FrameSize {
		return fmt.Errorf("%w: hop size %d must be between 1 and frame size %d", ErrInvalidConfiguration, c.HopSize, c.FrameSize)
	}
	return nil
}

// WithHop returns c using hop. When hop exceeds the frame size the frame
// grows to the next power of two so no samples are skipped; grown reports it.
func (c AnalysisConfig) WithHop(hop int) (adjusted AnalysisConfig, grown bool) {
	c.HopSize = hop
	if hop <= c.FrameSize {
		return c, false
	}
	frame := 2
	for frame < hop {
		frame <<= 1
	}
	c.FrameSize = frame
	return c, true
}

// VisualizationConfig selects the time window and frequency range to render
type VisualizationConfig struct {
	StartTime        float64 // Seconds
	Duration         float64 // Seconds; negative renders to the end
	SamplesPerSecond float64 // Matrix rows per second of audio
	MinFrequency     float64 // Hz
	MaxFrequency     float64 // Hz
}

// DefaultVisualizationConfig renders the whole file over the audible range
func DefaultVisualizationConfig() VisualizationConfig {
	return VisualizationConfig{
		StartTime:        0,
		Duration:         -1,
		SamplesPerSecond: SamplesPerSecond,
		MinFrequency:     MinFrequency,
		MaxFrequency:     MaxFrequency,
	}
}

// Validate checks the window and frequency range against the Nyquist limit
func (c VisualizationConfig) Validate(sampleRate int) error {
	switch {
	case sampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfiguration, sampleRate)
	case math.IsNaN(c.StartTime) || c.StartTime < 0:
		return fmt.Errorf("%w: start time %.3fs must not be negative", ErrInvalidConfiguration, c.StartTime)
	case math.IsNaN(c.Duration):
		return fmt.Errorf("%w: duration is not a number", ErrInvalidConfiguration)
	case !(c.SamplesPerSecond > 0):
		return fmt.Errorf("%w: samples per second %.3f must be positive", ErrInvalidConfiguration, c.SamplesPerSecond)
	case !(c.MinFrequency > 0):
		return fmt.Errorf("%w: minimum frequency %.3f Hz must be positive", ErrInvalidConfiguration, c.MinFrequency)
	case !(c.MaxFrequency > c.MinFrequency):
		return fmt.Errorf("%w: maximum frequency %.3f Hz must exceed minimum %.3f Hz", ErrInvalidConfiguration, c.MaxFrequency, c.MinFrequency)
	case c.MaxFrequency > float64(sampleRate)/2:
		return fmt.Errorf("%w: maximum frequency %.3f Hz exceeds Nyquist %.1f Hz", ErrInvalidConfiguration, c.MaxFrequency, float64(sampleRate)/2)
	}
	return nil
}

// HopForSampleRate returns the hop size that yields SamplesPerSecond frames per second
func (c VisualizationConfig) HopForSampleRate(sampleRate int) int {
	hop := int(math.Round(float64(sampleRate) / c.SamplesPerSecond))
	if hop < 1 {
		hop = 1
	}
	return hop
}

// ResolveTimeWindow derives start and duration from at most two of
// start, end and duration. A nil pointer means "not given".
// The returned duration is negative when the window runs to the end.
func ResolveTimeWindow(start, end, duration *float64) (float64, float64, error) {
	given := 0
	for _, v := range []*float64{start, end, duration} {
		if v != nil {
			given++
		}
	}
	if given == 3 {
		return 0, 0, fmt.Errorf("%w: at most two of start, end and duration may be given", ErrUsage)
	}

	for _, v := range []*float64{start, end, duration} {
		if v != nil && (*v < 0 || math.IsNaN(*v)) {
			return 0, 0, fmt.Errorf("%w: times must be non-negative", ErrUsage)
		}
	}

	switch {
	case end != nil && duration != nil:
		if *duration > *end {
			return 0, 0, fmt.Errorf("%w: duration %.3fs is longer than end time %.3fs", ErrUsage, *duration, *end)
		}
		return *end - *duration, *duration, nil

	case end != nil:
		s := 0.0
		if start != nil {
			s = *start
		}
		if *end <= s {
			return 0, 0, fmt.Errorf("%w: end time %.3fs must be after start time %.3fs", ErrUsage, *end, s)
		}
		return s, *end - s, nil

	default:
		s, d := 0.0, -1.0
		if start != nil {
			s = *start
		}
		if duration != nil {
			d = *duration
		}
		return s, d, nil
	}
}
