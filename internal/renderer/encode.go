package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrEncode is returned when an image cannot be encoded or written
var ErrEncode = errors.New("image encode failed")

// Format is an output raster format
type Format int

const (
	FormatPNG Format = iota
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatBMP:
		return "bmp"
	default:
		return "png"
	}
}

// FormatForPath picks the format from the file extension
func FormatForPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	default:
		return 0, fmt.Errorf("%w: unsupported output extension %q (use .png or .bmp)", ErrEncode, ext)
	}
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatBMP:
		err = bmp.Encode(w, img)
	default:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		err = enc.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrEncode, format, err)
	}
	return nil
}

// Save encodes img to path, choosing the format by extension
func Save(path string, img image.Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}
