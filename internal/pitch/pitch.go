package pitch

import (
	"math"
	"strconv"
)

// Equal temperament reference
const (
	A4Frequency = 440.0
	A4MIDI      = 69
)

// Accidental is the sharp/flat suffix of a note name
type Accidental int

const (
	Natural Accidental = iota
	Sharp
	Flat
)

func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "#"
	case Flat:
		return "b"
	default:
		return ""
	}
}

// Pitch is a spelled note: letter, accidental and octave (C4 is middle C)
type Pitch struct {
	Letter     byte
	Accidental Accidental
	Octave     int
}

// Semitone offsets of the natural letters within an octave
var letterSemitone = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Sharp spellings used when naming a MIDI number
var sharpNames = [12]struct {
	letter     byte
	accidental Accidental
}{
	{'C', Natural}, {'C', Sharp}, {'D', Natural}, {'D', Sharp},
	{'E', Natural}, {'F', Natural}, {'F', Sharp}, {'G', Natural},
	{'G', Sharp}, {'A', Natural}, {'A', Sharp}, {'B', Natural},
}

// MIDI returns the MIDI note number, (octave+1)*12 + semitone
func (p Pitch) MIDI() int {
	semitone := letterSemitone[p.Letter]
	switch p.Accidental {
	case Sharp:
		semitone++
	case Flat:
		semitone--
	}
	return (p.Octave+1)*12 + semitone
}

// Frequency returns the equal-tempered frequency in Hz
func (p Pitch) Frequency() float64 {
	return MIDIToFrequency(p.MIDI())
}

// Name returns the note name without octave, e.g. "C#"
func (p Pitch) Name() string {
	return string(p.Letter) + p.Accidental.String()
}

func (p Pitch) String() string {
	return p.Name() + strconv.Itoa(p.Octave)
}

// IsWhiteKey reports whether the pitch carries no accidental
func IsWhiteKey(p Pitch) bool {
	return p.Accidental == Natural
}

// MIDIToFrequency converts a MIDI note number to Hz
func MIDIToFrequency(midi int) float64 {
	return A4Frequency * math.Pow(2, float64(midi-A4MIDI)/12)
}

// FrequencyToMIDI returns the nearest MIDI note number for a frequency
func FrequencyToMIDI(freq float64) int {
	return int(math.Round(A4MIDI + 12*math.Log2(freq/A4Frequency)))
}

// MIDIToPitch names a MIDI number using sharp spellings.
// The octave uses Go's truncating integer division.
func MIDIToPitch(midi int) Pitch {
	idx := midi % 12
	if idx < 0 {
		idx += 12
	}
	name := sharpNames[idx]
	return Pitch{
		Letter:     name.letter,
		Accidental: name.accidental,
		Octave:     midi/12 - 1,
	}
}

// FrequencyToPitch returns the nearest equal-tempered pitch for any positive frequency
func FrequencyToPitch(freq float64) Pitch {
	return MIDIToPitch(FrequencyToMIDI(freq))
}
