package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/linuxmatters/pitchgram/internal/audio"
	"github.com/linuxmatters/pitchgram/internal/axis"
	"github.com/linuxmatters/pitchgram/internal/config"
	"golang.org/x/image/draw"
)

// ErrEmptySpectrogram is returned when there is nothing to render
var ErrEmptySpectrogram = errors.New("spectrogram has no frames or bins")

// midGray is used for every pixel when the selected window has no dynamic range
const midGray = 128

// Style holds the appearance of the label margin
type Style struct {
	MarginColor color.RGBA
	GridColor   color.RGBA
	FontSize    float64
}

// Options controls image geometry and appearance
type Options struct {
	Width      int // Spectrogram columns; 0 uses one column per selected frame
	Height     int
	Margin     int
	ColorMap   ColorMap
	Annotation AnnotationMode
	Style      Style
}

// OptionsFromRuntime builds Options from user overrides, falling back to defaults
func OptionsFromRuntime(rc *config.RuntimeConfig, width, height int) (Options, error) {
	if rc == nil {
		rc = &config.RuntimeConfig{}
	}

	cm, err := ColorMapByName(rc.GetColorMap())
	if err != nil {
		return Options{}, err
	}

	mode, err := ParseAnnotationMode(rc.GetAnnotation())
	if err != nil {
		return Options{}, err
	}

	mr, mg, mb := rc.GetMarginColor()
	gr, gg, gb := rc.GetGridColor()

	return Options{
		Width:      width,
		Height:     height,
		Margin:     config.LabelMargin,
		ColorMap:   cm,
		Annotation: mode,
		Style: Style{
			MarginColor: color.RGBA{R: mr, G: mg, B: mb, A: 255},
			GridColor:   color.RGBA{R: gr, G: gg, B: gb, A: 255},
			FontSize:    rc.GetLabelFontSize(),
		},
	}, nil
}

// DefaultOptions returns the default geometry and appearance
func DefaultOptions() Options {
	opts, _ := OptionsFromRuntime(nil, 0, config.Height)
	return opts
}

// PixelImage is a rendered spectrogram
type PixelImage struct {
	Intensity  *image.Gray // Normalised spectrogram before colour mapping
	Image      *image.RGBA // Label margin followed by the coloured spectrogram
	Margin     int         // Width of the label margin in Image
	StartFrame int         // First spectrogram frame shown
	FrameCount int         // Number of spectrogram frames shown
}

// SelectWindow returns the frame range [start, start+count) covered by vis
func SelectWindow(numFrames int, vis config.VisualizationConfig) (start, count int, err error) {
	start = int(math.Floor(vis.StartTime * vis.SamplesPerSecond))
	if start >= numFrames {
		return 0, 0, fmt.Errorf("%w: start time %.3fs is past the end of the audio",
			config.ErrInvalidConfiguration, vis.StartTime)
	}

	if vis.Duration < 0 {
		count = numFrames - start
	} else {
		count = int(math.Round(vis.Duration * vis.SamplesPerSecond))
	}
	if start+count > numFrames {
		count = numFrames - start
	}
	if count <= 0 {
		return 0, 0, fmt.Errorf("%w: duration %.3fs selects no frames",
			config.ErrInvalidConfiguration, vis.Duration)
	}

	return start, count, nil
}

// Render maps the selected window of a spectrogram onto a log-frequency image,
// colours it and composites the pitch label margin.
func Render(sg *audio.Spectrogram, vis config.VisualizationConfig, opts Options) (*PixelImage, error) {
	if sg == nil || sg.NumFrames() == 0 || sg.NumBins() == 0 {
		return nil, ErrEmptySpectrogram
	}
	if err := vis.Validate(sg.SampleRate); err != nil {
		return nil, err
	}
	if opts.Height < 2 {
		return nil, fmt.Errorf("%w: height %d must be at least 2", config.ErrInvalidConfiguration, opts.Height)
	}
	if opts.Width < 0 || opts.Margin < 0 {
		return nil, fmt.Errorf("%w: width %d and margin %d must not be negative",
			config.ErrInvalidConfiguration, opts.Width, opts.Margin)
	}

	start, count, err := SelectWindow(sg.NumFrames(), vis)
	if err != nil {
		return nil, err
	}

	width := opts.Width
	if width == 0 {
		width = count
	}

	intensity := intensityImage(sg, vis, start, count, width, opts.Height)

	out := image.NewRGBA(image.Rect(0, 0, opts.Margin+width, opts.Height))
	draw.Draw(out, image.Rect(0, 0, opts.Margin, opts.Height), image.NewUniform(opts.Style.MarginColor), image.Point{}, draw.Src)
	opts.ColorMap.Apply(out, intensity, image.Pt(opts.Margin, 0))

	if opts.Margin > 0 {
		if err := Annotate(out, vis, opts); err != nil {
			return nil, err
		}
	}

	return &PixelImage{
		Intensity:  intensity,
		Image:      out,
		Margin:     opts.Margin,
		StartFrame: start,
		FrameCount: count,
	}, nil
}

// intensityImage resamples the selected frames onto a width x height grid
func intensityImage(sg *audio.Spectrogram, vis config.VisualizationConfig, start, count, width, height int) *image.Gray {
	frames := sg.Frames[start : start+count]

	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, row := range frames {
		for _, v := range row {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	if maxVal == minVal {
		for i := range img.Pix {
			img.Pix[i] = midGray
		}
		return img
	}

	// Bin per pixel row, shared by every column
	bins := make([]int, height)
	for y := range bins {
		freq := axis.RowToFrequency(float64(y), height, vis.MinFrequency, vis.MaxFrequency)
		bins[y] = axis.BinForFrequency(freq, sg.NumBins(), sg.SampleRate)
	}

	scale := 1 / (maxVal - minVal)
	for x := 0; x < width; x++ {
		row := frames[x*count/width]
		for y, bin := range bins {
			v := (row[bin] - minVal) * scale
			v = math.Max(0, math.Min(1, v))
			img.Pix[y*img.Stride+x] = uint8(math.Round(v * 255))
		}
	}

	return img
}
