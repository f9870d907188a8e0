package audio

import (
	"errors"
	"fmt"
	"io"
)

// readChunkSize is the number of mono samples requested per ReadChunk call
const readChunkSize = 8192

// SampleBuffer is a fully decoded mono signal
type SampleBuffer struct {
	Samples    []float64
	SampleRate int
	Channels   int // channel count of the source before downmixing
}

// Duration returns the signal length in seconds
func (b *SampleBuffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Load decodes the whole of path into memory as mono samples
func Load(path string) (*SampleBuffer, error) {
	dec, err := NewDecoder(path)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ReadAll(dec)
}

// ReadAll drains dec into a SampleBuffer
func ReadAll(dec AudioDecoder) (*SampleBuffer, error) {
	if dec.SampleRate() <= 0 {
		return nil, fmt.Errorf("%w: invalid sample rate %d", ErrDecode, dec.SampleRate())
	}

	buf := &SampleBuffer{
		SampleRate: dec.SampleRate(),
		Channels:   dec.NumChannels(),
	}

	for {
		chunk, err := dec.ReadChunk(readChunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		buf.Samples = append(buf.Samples, chunk...)
	}

	if len(buf.Samples) == 0 {
		return nil, ErrEmptyInput
	}

	return buf, nil
}
