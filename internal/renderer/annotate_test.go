package renderer

import (
	"errors"
	"image"
	"testing"

	"github.com/linuxmatters/pitchgram/internal/config"
	"github.com/linuxmatters/pitchgram/internal/pitch"
)

// TestGridlines_Modes verifies which notes each mode annotates over the
// default 20 Hz - 20 kHz range. E0 (20.6 Hz) is the first note in range and
// B8 the last annotated note.
func TestGridlines_Modes(t *testing.T) {
	vis := config.DefaultVisualizationConfig()

	octaves := Gridlines(vis, 1024, AnnotateOctaves)
	if len(octaves) != 8 {
		t.Errorf("octaves mode: %d lines, want 8 (C1..C8)", len(octaves))
	}
	for _, line := range octaves {
		if line.Pitch.Letter != 'C' || line.Pitch.Accidental != pitch.Natural || !line.Labelled {
			t.Errorf("octaves mode annotated %s", line.Pitch)
		}
	}

	all := Gridlines(vis, 1024, AnnotateAll)
	if len(all) != 119-16+1 {
		t.Errorf("all mode: %d lines, want %d", len(all), 119-16+1)
	}
	if all[0].Pitch.String() != "E0" {
		t.Errorf("lowest note = %s, want E0", all[0].Pitch)
	}

	white := Gridlines(vis, 1024, AnnotateWhite)
	labelled := 0
	for _, line := range all {
		if line.Labelled {
			labelled++
		}
		if line.Labelled != pitch.IsWhiteKey(line.Pitch) {
			t.Errorf("%s labelled = %v, want white keys only", line.Pitch, line.Labelled)
		}
	}
	if len(white) != labelled {
		t.Errorf("white mode: %d lines, want %d", len(white), labelled)
	}
}

// TestGridlines_RowsAscendWithPitch verifies gridlines move up the image as
// pitch rises and stay inside it.
func TestGridlines_RowsAscendWithPitch(t *testing.T) {
	const height = 600
	lines := Gridlines(config.DefaultVisualizationConfig(), height, AnnotateAll)

	for i, line := range lines {
		if line.Row < 0 || line.Row >= height {
			t.Fatalf("%s row %d outside image", line.Pitch, line.Row)
		}
		if i > 0 && line.Row > lines[i-1].Row {
			t.Fatalf("%s row %d below lower note %s row %d", line.Pitch, line.Row, lines[i-1].Pitch, lines[i-1].Row)
		}
	}
}

// TestGridlines_NarrowRange verifies notes outside the frequency range are skipped.
func TestGridlines_NarrowRange(t *testing.T) {
	vis := config.DefaultVisualizationConfig()
	vis.MinFrequency = 430
	vis.MaxFrequency = 450

	lines := Gridlines(vis, 100, AnnotateAll)
	if len(lines) != 1 || lines[0].Pitch.String() != "A4" {
		t.Fatalf("Gridlines(430-450 Hz) = %+v, want only A4", lines)
	}
}

// TestAnnotate_DrawsLines verifies that C gridlines span the margin and
// other notes draw a tick at the margin's right edge.
func TestAnnotate_DrawsLines(t *testing.T) {
	const height = 400

	opts := DefaultOptions()
	opts.Height = height
	vis := config.DefaultVisualizationConfig()

	img := image.NewRGBA(image.Rect(0, 0, opts.Margin+10, height))
	if err := Annotate(img, vis, opts); err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	var c4, d4 Gridline
	for _, line := range Gridlines(vis, height, opts.Annotation) {
		switch line.Pitch.String() {
		case "C4":
			c4 = line
		case "D4":
			d4 = line
		}
	}

	if got := img.RGBAAt(0, c4.Row); got != opts.Style.GridColor {
		t.Errorf("C4 line at x=0 = %v, want grid colour", got)
	}
	if got := img.RGBAAt(opts.Margin-1, d4.Row); got != opts.Style.GridColor {
		t.Errorf("D4 tick at margin edge = %v, want grid colour", got)
	}
	if got := img.RGBAAt(opts.Margin+5, c4.Row); got == opts.Style.GridColor {
		t.Error("gridline spilled into the spectrogram area")
	}
}

// TestLabelBaseline verifies labels rest on their line unless that would
// push them above the top of the image.
func TestLabelBaseline(t *testing.T) {
	testCases := []struct {
		row, ascent, want int
	}{
		{row: 100, ascent: 9, want: 98},
		{row: 11, ascent: 9, want: 9},
		{row: 10, ascent: 9, want: 20},
		{row: 0, ascent: 9, want: 10},
	}

	for _, tc := range testCases {
		if got := labelBaseline(tc.row, tc.ascent); got != tc.want {
			t.Errorf("labelBaseline(%d, %d) = %d, want %d", tc.row, tc.ascent, got, tc.want)
		}
	}
}

// TestAnnotate_TopLabelVisible verifies a note on the top row still gets a
// readable label, drawn below its gridline.
func TestAnnotate_TopLabelVisible(t *testing.T) {
	const height = 200
	opts := DefaultOptions()
	opts.Height = height
	opts.Annotation = AnnotateOctaves
	vis := config.DefaultVisualizationConfig()
	vis.MinFrequency = pitch.MIDIToFrequency(24) // C1
	vis.MaxFrequency = pitch.MIDIToFrequency(84) // C6

	lines := Gridlines(vis, height, opts.Annotation)
	if top := lines[len(lines)-1]; top.Pitch.String() != "C6" || top.Row != 0 {
		t.Fatalf("top gridline = %s at row %d, want C6 at row 0", top.Pitch, top.Row)
	}

	// Transparent background, so any alpha below row 0 is label ink
	img := image.NewRGBA(image.Rect(0, 0, opts.Margin, height))
	if err := Annotate(img, vis, opts); err != nil {
		t.Fatalf("Annotate() error = %v", err)
	}

	ink := 0
	for y := 1; y < 20; y++ {
		for x := 0; x < opts.Margin; x++ {
			if img.RGBAAt(x, y).A > 0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("no label drawn under the C6 gridline")
	}
}

// TestParseAnnotationMode covers names and the error path.
func TestParseAnnotationMode(t *testing.T) {
	for name, want := range map[string]AnnotationMode{"white": AnnotateWhite, "octaves": AnnotateOctaves, "all": AnnotateAll} {
		got, err := ParseAnnotationMode(name)
		if err != nil || got != want {
			t.Errorf("ParseAnnotationMode(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), name)
		}
	}

	if _, err := ParseAnnotationMode("sharps"); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("ParseAnnotationMode(sharps) error = %v, want ErrInvalidConfiguration", err)
	}
}
