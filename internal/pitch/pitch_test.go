package pitch

import (
	"errors"
	"math"
	"testing"
)

// TestNoteToFrequency_KnownValues verifies the equal-tempered reference points.
// A4 must be exactly 440 Hz; any drift here shifts every gridline on the image.
func TestNoteToFrequency_KnownValues(t *testing.T) {
	testCases := []struct {
		token     string
		want      float64
		tolerance float64
	}{
		{token: "A4", want: 440.0, tolerance: 1e-6},
		{token: "C4", want: 261.63, tolerance: 0.01},
		{token: "C#4", want: 277.18, tolerance: 0.01},
		{token: "Db4", want: 277.18, tolerance: 0.01},
		{token: "A3", want: 220.0, tolerance: 1e-6},
		{token: "A5", want: 880.0, tolerance: 1e-6},
		{token: "C0", want: 16.35, tolerance: 0.01},
		{token: "B8", want: 7902.13, tolerance: 0.01},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := NoteToFrequency(tc.token)
			if err != nil {
				t.Fatalf("NoteToFrequency(%q) returned error: %v", tc.token, err)
			}
			if math.Abs(got-tc.want) > tc.tolerance {
				t.Errorf("NoteToFrequency(%q) = %.6f, want %.6f (±%g)", tc.token, got, tc.want, tc.tolerance)
			}
		})
	}
}

// TestNoteToFrequency_OctaveDoubling verifies that one octave up doubles the
// frequency and one octave down halves it.
func TestNoteToFrequency_OctaveDoubling(t *testing.T) {
	a3, _ := NoteToFrequency("A3")
	a4, _ := NoteToFrequency("A4")
	a5, _ := NoteToFrequency("A5")

	if math.Abs(a5-2*a4) > 1e-9 {
		t.Errorf("A5 = %.9f, want 2*A4 = %.9f", a5, 2*a4)
	}
	if math.Abs(a3-0.5*a4) > 1e-9 {
		t.Errorf("A3 = %.9f, want A4/2 = %.9f", a3, 0.5*a4)
	}
}

// TestParseNote_InvalidTokens verifies that malformed tokens are rejected with
// ErrInvalidNoteFormat and the specific reason, rather than guessed at.
func TestParseNote_InvalidTokens(t *testing.T) {
	testCases := []struct {
		token  string
		reason ParseReason
		pos    int
	}{
		{token: "", reason: ReasonEmpty, pos: 0},
		{token: "a4", reason: ReasonInvalidLetter, pos: 0},
		{token: "H4", reason: ReasonInvalidLetter, pos: 0},
		{token: "4", reason: ReasonInvalidLetter, pos: 0},
		{token: "C", reason: ReasonMissingOctave, pos: 1},
		{token: "C#", reason: ReasonMissingOctave, pos: 2},
		{token: "C##4", reason: ReasonInvalidOctave, pos: 2},
		{token: "Cb#4", reason: ReasonInvalidOctave, pos: 2},
		{token: "CB4", reason: ReasonInvalidOctave, pos: 1},
		{token: "C-1", reason: ReasonInvalidOctave, pos: 1},
		{token: "C4 ", reason: ReasonInvalidOctave, pos: 2},
		{token: "C4b", reason: ReasonInvalidOctave, pos: 2},
		{token: "C99999999999", reason: ReasonOctaveTooLarge, pos: 7},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			_, err := ParseNote(tc.token)
			if err == nil {
				t.Fatalf("ParseNote(%q) succeeded, want error", tc.token)
			}
			if !errors.Is(err, ErrInvalidNoteFormat) {
				t.Errorf("error %v does not wrap ErrInvalidNoteFormat", err)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Reason != tc.reason {
				t.Errorf("reason = %v, want %v", perr.Reason, tc.reason)
			}
			if perr.Pos != tc.pos {
				t.Errorf("pos = %d, want %d", perr.Pos, tc.pos)
			}
		})
	}
}

// TestParseNote_Spelling verifies the parsed letter, accidental and octave,
// including multi-digit octaves.
func TestParseNote_Spelling(t *testing.T) {
	testCases := []struct {
		token string
		want  Pitch
		midi  int
	}{
		{token: "C4", want: Pitch{Letter: 'C', Octave: 4}, midi: 60},
		{token: "F#2", want: Pitch{Letter: 'F', Accidental: Sharp, Octave: 2}, midi: 42},
		{token: "Bb0", want: Pitch{Letter: 'B', Accidental: Flat, Octave: 0}, midi: 22},
		{token: "Cb4", want: Pitch{Letter: 'C', Accidental: Flat, Octave: 4}, midi: 59},
		{token: "G10", want: Pitch{Letter: 'G', Octave: 10}, midi: 139},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ParseNote(tc.token)
			if err != nil {
				t.Fatalf("ParseNote(%q) error: %v", tc.token, err)
			}
			if got != tc.want {
				t.Errorf("ParseNote(%q) = %+v, want %+v", tc.token, got, tc.want)
			}
			if got.MIDI() != tc.midi {
				t.Errorf("MIDI() = %d, want %d", got.MIDI(), tc.midi)
			}
		})
	}
}

// TestFrequencyToPitch_RoundTrip verifies that every valid token survives
// token -> frequency -> pitch, up to enharmonic spelling of flats.
func TestFrequencyToPitch_RoundTrip(t *testing.T) {
	letters := []byte("CDEFGAB")
	accidentals := []Accidental{Natural, Sharp, Flat}

	for octave := 0; octave <= 8; octave++ {
		for _, l := range letters {
			for _, acc := range accidentals {
				p := Pitch{Letter: l, Accidental: acc, Octave: octave}
				token := p.String()

				freq, err := NoteToFrequency(token)
				if err != nil {
					t.Fatalf("NoteToFrequency(%q): %v", token, err)
				}

				got := FrequencyToPitch(freq)
				if got.MIDI() != p.MIDI() {
					t.Errorf("%s: round trip gave %s (MIDI %d), want MIDI %d", token, got, got.MIDI(), p.MIDI())
				}
				if acc == Natural && (got.Letter != l || got.Octave != octave) {
					t.Errorf("%s: round trip gave %s", token, got)
				}
				if got.Accidental == Flat {
					t.Errorf("%s: reverse path produced flat spelling %s", token, got)
				}
			}
		}
	}
}

// TestFrequencyToPitch_Rounding verifies nearest-semitone rounding and that
// far out-of-range frequencies still map to some pitch.
func TestFrequencyToPitch_Rounding(t *testing.T) {
	testCases := []struct {
		name string
		freq float64
		want string
	}{
		{name: "exact A4", freq: 440, want: "A4"},
		{name: "slightly sharp A4", freq: 445, want: "A4"},
		{name: "closer to A#4", freq: 460, want: "A#4"},
		{name: "middle C", freq: 261.63, want: "C4"},
		{name: "MIDI 0", freq: 8.1758, want: "C-1"},
		{name: "sub-audio", freq: 1, want: "C-4"},
		{name: "ultrasonic", freq: 40000, want: "D#11"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FrequencyToPitch(tc.freq).String()
			if got != tc.want {
				t.Errorf("FrequencyToPitch(%.4f) = %s, want %s", tc.freq, got, tc.want)
			}
		})
	}
}

// TestIsWhiteKey verifies that only unaltered letters count as white keys.
func TestIsWhiteKey(t *testing.T) {
	white := 0
	for midi := 60; midi < 72; midi++ {
		if IsWhiteKey(MIDIToPitch(midi)) {
			white++
		}
	}
	if white != 7 {
		t.Errorf("found %d white keys in one octave, want 7", white)
	}

	if IsWhiteKey(Pitch{Letter: 'D', Accidental: Flat, Octave: 4}) {
		t.Error("Db4 reported as white key")
	}
	if !IsWhiteKey(Pitch{Letter: 'E', Octave: 2}) {
		t.Error("E2 not reported as white key")
	}
}
