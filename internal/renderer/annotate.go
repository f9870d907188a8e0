package renderer

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/linuxmatters/pitchgram/internal/axis"
	"github.com/linuxmatters/pitchgram/internal/config"
	"github.com/linuxmatters/pitchgram/internal/pitch"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// AnnotationMode selects which notes get gridlines and labels
type AnnotationMode int

const (
	AnnotateWhite   AnnotationMode = iota // White keys, the default
	AnnotateOctaves                       // C notes only
	AnnotateAll                           // Every semitone; black keys get unlabelled ticks
)

var annotationNames = map[string]AnnotationMode{
	"white":   AnnotateWhite,
	"octaves": AnnotateOctaves,
	"all":     AnnotateAll,
}

func (m AnnotationMode) String() string {
	for name, mode := range annotationNames {
		if mode == m {
			return name
		}
	}
	return fmt.Sprintf("AnnotationMode(%d)", int(m))
}

// ParseAnnotationMode converts "white", "octaves" or "all"
func ParseAnnotationMode(s string) (AnnotationMode, error) {
	mode, ok := annotationNames[s]
	if !ok {
		return 0, fmt.Errorf("%w: unknown annotation mode %q (choose from white, octaves, all)",
			config.ErrInvalidConfiguration, s)
	}
	return mode, nil
}

// Notes annotated span octaves 0 to 8
const (
	firstAnnotatedMIDI = 12
	lastAnnotatedMIDI  = 119
)

// tickLength is the width of the gridline for notes other than C
const tickLength = 8

// Gridline is one annotated note
type Gridline struct {
	Pitch    pitch.Pitch
	Row      int
	Labelled bool
}

// Gridlines lists the notes annotated for a given range and mode, lowest first
func Gridlines(vis config.VisualizationConfig, height int, mode AnnotationMode) []Gridline {
	var lines []Gridline
	for midi := firstAnnotatedMIDI; midi <= lastAnnotatedMIDI; midi++ {
		freq := pitch.MIDIToFrequency(midi)
		if freq < vis.MinFrequency || freq > vis.MaxFrequency {
			continue
		}

		p := pitch.MIDIToPitch(midi)
		white := pitch.IsWhiteKey(p)
		isC := p.Letter == 'C' && p.Accidental == pitch.Natural

		switch mode {
		case AnnotateOctaves:
			if !isC {
				continue
			}
		case AnnotateWhite:
			if !white {
				continue
			}
		}

		row := int(math.Round(axis.FrequencyToRow(freq, height, vis.MinFrequency, vis.MaxFrequency)))
		row = max(0, min(height-1, row))

		lines = append(lines, Gridline{Pitch: p, Row: row, Labelled: white})
	}
	return lines
}

var (
	labelFont     *truetype.Font
	labelFontErr  error
	labelFontOnce sync.Once
)

// labelBaseline rests the label on its line, or hangs it below the line
// when there is no room above it
func labelBaseline(row, ascent int) int {
	if row-2 < ascent {
		return row + 1 + ascent
	}
	return row - 2
}

// loadLabelFont parses the embedded Go Regular face once
func loadLabelFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = truetype.Parse(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// Annotate draws pitch gridlines and note names into the left margin of img
func Annotate(img *image.RGBA, vis config.VisualizationConfig, opts Options) error {
	f, err := loadLabelFont()
	if err != nil {
		return fmt.Errorf("failed to parse label font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    opts.Style.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	grid := image.NewUniform(opts.Style.GridColor)
	d := &font.Drawer{
		Dst:  img,
		Src:  grid,
		Face: face,
	}

	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	lastLabelTop := math.MaxInt

	for _, line := range Gridlines(vis, opts.Height, opts.Annotation) {
		x0 := opts.Margin - tickLength
		if line.Pitch.Letter == 'C' && line.Pitch.Accidental == pitch.Natural {
			x0 = 0
		}
		draw.Draw(img, image.Rect(max(0, x0), line.Row, opts.Margin, line.Row+1), grid, image.Point{}, draw.Src)

		if !line.Labelled {
			continue
		}
		baseline := labelBaseline(line.Row, ascent)
		if baseline+descent > lastLabelTop {
			continue
		}

		d.Dot = freetype.Pt(2, baseline)
		d.DrawString(line.Pitch.String())
		lastLabelTop = baseline - ascent
	}

	return nil
}
