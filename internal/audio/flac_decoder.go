package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mewkiz/flac"
)

// FLACDecoder implements AudioDecoder for FLAC files
type FLACDecoder struct {
	stream      *flac.Stream
	file        *os.File
	sampleRate  int
	numChannels int
	pending     []float64 // decoded samples not yet returned
}

// NewFLACDecoder creates a new FLAC decoder
func NewFLACDecoder(filename string) (*FLACDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	// Reads the signature and StreamInfo block
	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to create FLAC decoder: %v", ErrDecode, err)
	}

	return &FLACDecoder{
		stream:      stream,
		file:        f,
		sampleRate:  int(stream.Info.SampleRate),
		numChannels: int(stream.Info.NChannels),
	}, nil
}

// ReadChunk reads the next chunk of samples
func (d *FLACDecoder) ReadChunk(numSamples int) ([]float64, error) {
	for len(d.pending) < numSamples {
		frame, err := d.stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse FLAC frame: %v", ErrDecode, err)
		}

		maxVal := float64(int64(1) << (frame.BitsPerSample - 1))
		for i := range frame.Subframes[0].Samples {
			var sum int64
			for _, subframe := range frame.Subframes {
				sum += int64(subframe.Samples[i])
			}
			d.pending = append(d.pending, float64(sum)/float64(len(frame.Subframes))/maxVal)
		}
	}

	if len(d.pending) == 0 {
		return nil, io.EOF
	}

	n := numSamples
	if n > len(d.pending) {
		n = len(d.pending)
	}
	samples := make([]float64, n)
	copy(samples, d.pending[:n])
	d.pending = d.pending[n:]

	return samples, nil
}

// SampleRate returns the sample rate
func (d *FLACDecoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *FLACDecoder) NumChannels() int {
	return d.numChannels
}

// Close closes the decoder and releases resources
func (d *FLACDecoder) Close() error {
	if d.stream != nil {
		d.stream.Close()
	}
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
