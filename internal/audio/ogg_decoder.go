package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
)

// OGGDecoder implements AudioDecoder for Ogg Vorbis files
type OGGDecoder struct {
	reader *oggvorbis.Reader
	file   *os.File
}

// NewOGGDecoder creates a new Ogg Vorbis decoder
func NewOGGDecoder(filename string) (*OGGDecoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	reader, err := oggvorbis.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to create Ogg Vorbis decoder: %v", ErrDecode, err)
	}

	return &OGGDecoder{reader: reader, file: f}, nil
}

// ReadChunk reads the next chunk of samples
func (d *OGGDecoder) ReadChunk(numSamples int) ([]float64, error) {
	channels := d.reader.Channels()
	buf := make([]float32, numSamples*channels)

	// Read may return short counts mid-stream; keep going until full or EOF
	n := 0
	for n < len(buf) {
		read, err := d.reader.Read(buf[n:])
		n += read
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read Ogg Vorbis data: %v", ErrDecode, err)
		}
		if read == 0 {
			break
		}
	}

	frames := n / channels
	if frames == 0 {
		return nil, io.EOF
	}

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf[i*channels+ch])
		}
		samples[i] = sum / float64(channels)
	}

	return samples, nil
}

// SampleRate returns the sample rate
func (d *OGGDecoder) SampleRate() int {
	return d.reader.SampleRate()
}

// NumChannels returns the number of audio channels
func (d *OGGDecoder) NumChannels() int {
	return d.reader.Channels()
}

// Close closes the decoder and releases resources
func (d *OGGDecoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
