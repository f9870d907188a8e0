package pitch

import (
	"errors"
	"fmt"
)

// ErrInvalidNoteFormat is returned when a note token does not match
// <letter A-G>[# or b]<octave digits>.
var ErrInvalidNoteFormat = errors.New("invalid note format")

// maxOctave bounds the parsed octave so the MIDI arithmetic cannot overflow.
const maxOctave = 1 << 20

// ParseReason identifies why a note token was rejected
type ParseReason int

const (
	ReasonEmpty ParseReason = iota
	ReasonInvalidLetter
	ReasonMissingOctave
	ReasonInvalidOctave
	ReasonOctaveTooLarge
)

func (r ParseReason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty token"
	case ReasonInvalidLetter:
		return "note letter must be one of A-G"
	case ReasonMissingOctave:
		return "missing octave number"
	case ReasonInvalidOctave:
		return "octave must be a non-negative integer"
	case ReasonOctaveTooLarge:
		return "octave out of range"
	default:
		return "unknown"
	}
}

// ParseError describes a rejected note token. It unwraps to ErrInvalidNoteFormat.
type ParseError struct {
	Token  string
	Pos    int
	Reason ParseReason
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %q at position %d: %s", ErrInvalidNoteFormat, e.Token, e.Pos, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidNoteFormat
}

type parseState int

const (
	stateLetter parseState = iota
	stateAccidental
	stateOctave
)

// ParseNote parses tokens such as "A4", "C#3" or "Gb5".
// Letters are case-sensitive and at most one accidental is accepted.
func ParseNote(token string) (Pitch, error) {
	if token == "" {
		return Pitch{}, &ParseError{Token: token, Reason: ReasonEmpty}
	}

	var p Pitch
	digits := 0
	state := stateLetter

	for i := 0; i < len(token); i++ {
		c := token[i]
		switch state {
		case stateLetter:
			if _, ok := letterSemitone[c]; !ok {
				return Pitch{}, &ParseError{Token: token, Pos: i, Reason: ReasonInvalidLetter}
			}
			p.Letter = c
			state = stateAccidental

		case stateAccidental:
			switch c {
			case '#':
				p.Accidental = Sharp
				state = stateOctave
				continue
			case 'b':
				p.Accidental = Flat
				state = stateOctave
				continue
			}
			state = stateOctave
			fallthrough

		case stateOctave:
			if c < '0' || c > '9' {
				return Pitch{}, &ParseError{Token: token, Pos: i, Reason: ReasonInvalidOctave}
			}
			p.Octave = p.Octave*10 + int(c-'0')
			if p.Octave > maxOctave {
				return Pitch{}, &ParseError{Token: token, Pos: i, Reason: ReasonOctaveTooLarge}
			}
			digits++
		}
	}

	if digits == 0 {
		return Pitch{}, &ParseError{Token: token, Pos: len(token), Reason: ReasonMissingOctave}
	}

	return p, nil
}

// NoteToFrequency converts a note token to its equal-tempered frequency (A4 = 440 Hz)
func NoteToFrequency(token string) (float64, error) {
	p, err := ParseNote(token)
	if err != nil {
		return 0, err
	}
	return p.Frequency(), nil
}
