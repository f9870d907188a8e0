package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/linuxmatters/pitchgram/internal/config"
)

// ColorMap is a 256-entry lookup from intensity to colour
type ColorMap struct {
	Name string
	lut  [256]color.RGBA
}

var colorMaps = map[string]func(v float64) (r, g, b float64){
	"jet": func(v float64) (float64, float64, float64) {
		return 1.5 - math.Abs(4*v-3), 1.5 - math.Abs(4*v-2), 1.5 - math.Abs(4*v-1)
	},
	"gray": func(v float64) (float64, float64, float64) {
		return v, v, v
	},
	"fire": func(v float64) (float64, float64, float64) {
		return 3 * v, 3*v - 1, 3*v - 2
	},
}

// ColorMapNames returns the available colour map names, sorted
func ColorMapNames() []string {
	names := make([]string, 0, len(colorMaps))
	for name := range colorMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ColorMapByName builds the named colour map
func ColorMapByName(name string) (ColorMap, error) {
	ramp, ok := colorMaps[name]
	if !ok {
		return ColorMap{}, fmt.Errorf("%w: unknown colour map %q (choose from %v)",
			config.ErrInvalidConfiguration, name, ColorMapNames())
	}

	cm := ColorMap{Name: name}
	for i := range cm.lut {
		r, g, b := ramp(float64(i) / 255)
		cm.lut[i] = color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
	}
	return cm, nil
}

// channel clamps v to [0,1] and scales it to 8 bits
func channel(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// At returns the colour for one intensity value
func (c ColorMap) At(v uint8) color.RGBA {
	return c.lut[v]
}

// Apply colours src into dst with src's origin placed at offset
func (c ColorMap) Apply(dst *image.RGBA, src *image.Gray, offset image.Point) {
	b := src.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x+offset.X, y+offset.Y, c.At(src.GrayAt(x, y).Y))
		}
	}
}
