package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrDecode is returned when an input file cannot be decoded
var ErrDecode = errors.New("audio decode failed")

// AudioDecoder defines the interface for all audio format decoders.
// Every decoder downmixes to mono before returning samples.
type AudioDecoder interface {
	// ReadChunk reads up to numSamples mono samples in [-1, 1].
	// Returns io.EOF once the stream is exhausted.
	ReadChunk(numSamples int) ([]float64, error)

	// SampleRate returns the audio sample rate in Hz
	SampleRate() int

	// NumChannels returns the number of channels in the source (1=mono, 2=stereo)
	NumChannels() int

	// Close closes the decoder and releases resources
	Close() error
}

// SupportedExtensions lists the file extensions NewDecoder accepts
var SupportedExtensions = []string{".wav", ".mp3", ".flac", ".ogg"}

// IsSupported reports whether path has a decodable extension
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// NewDecoder opens path with the decoder matching its extension
func NewDecoder(path string) (AudioDecoder, error) {
	var (
		dec AudioDecoder
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		dec, err = NewWAVDecoder(path)
	case ".mp3":
		dec, err = NewMP3Decoder(path)
	case ".flac":
		dec, err = NewFLACDecoder(path)
	case ".ogg":
		dec, err = NewOGGDecoder(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q", ErrDecode, ext)
	}
	if err != nil {
		return nil, err
	}
	return dec, nil
}
