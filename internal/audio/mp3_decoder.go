package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/go-mp3"
)

// MP3Decoder implements AudioDecoder for MP3 files
type MP3Decoder struct {
	decoder    *mp3.Decoder
	file       *os.File
	sampleRate int
}

// NewMP3Decoder creates a new MP3 decoder
func NewMP3Decoder(filename string) (*MP3Decoder, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to create MP3 decoder: %v", ErrDecode, err)
	}

	return &MP3Decoder{
		decoder:    decoder,
		file:       f,
		sampleRate: decoder.SampleRate(),
	}, nil
}

// ReadChunk reads the next chunk of samples
func (d *MP3Decoder) ReadChunk(numSamples int) ([]float64, error) {
	// go-mp3 always emits interleaved 16-bit little-endian stereo, 4 bytes per frame
	buf := make([]byte, numSamples*4)

	n, err := io.ReadFull(d.decoder, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: failed to read MP3 data: %v", ErrDecode, err)
	}

	frames := n / 4
	if frames == 0 {
		return nil, io.EOF
	}

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		left := float64(int16(buf[i*4])|int16(buf[i*4+1])<<8) / 32768.0
		right := float64(int16(buf[i*4+2])|int16(buf[i*4+3])<<8) / 32768.0
		samples[i] = (left + right) / 2.0
	}

	return samples, nil
}

// SampleRate returns the sample rate
func (d *MP3Decoder) SampleRate() int {
	return d.sampleRate
}

// NumChannels returns the number of audio channels
func (d *MP3Decoder) NumChannels() int {
	return 2
}

// Close closes the decoder and releases resources
func (d *MP3Decoder) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
