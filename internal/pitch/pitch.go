package pitch

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// DefaultA4 is the standard concert pitch in hertz.
const DefaultA4 = 440.0

// c0Offset is the number of octaves between C0 and A4.
const c0Offset = 4.75

// scale is the chromatic scale starting at C.
var scale = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Parse errors.
var (
	ErrInvalidNoteName = errors.New("invalid note name")
	ErrInvalidOctave   = errors.New("invalid octave")
	ErrInvalidKey      = errors.New("invalid MIDI key")
	ErrInvalidTuning   = errors.New("tuning reference must be positive")
)

// NoteError reports a token that could not be converted.
type NoteError struct {
	Token string
	Err   error
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("%s %q", e.Err.Error(), e.Token)
}

func (e *NoteError) Unwrap() error {
	return e.Err
}

// Tuning holds the reference pitch and the derived C0 frequency.
// The zero value is not usable; use DefaultTuning or NewTuning.
type Tuning struct {
	a4 float64
	c0 float64
}

// DefaultTuning returns the A4 = 440 Hz tuning.
func DefaultTuning() Tuning {
	return Tuning{a4: DefaultA4, c0: DefaultA4 * math.Pow(2, -c0Offset)}
}

// NewTuning returns a tuning referenced to the given A4 frequency.
func NewTuning(a4 float64) (Tuning, error) {
	if a4 <= 0 || math.IsNaN(a4) || math.IsInf(a4, 0) {
		return Tuning{}, fmt.Errorf("%w: %v", ErrInvalidTuning, a4)
	}
	return Tuning{a4: a4, c0: a4 * math.Pow(2, -c0Offset)}, nil
}

// A4 returns the reference frequency.
func (t Tuning) A4() float64 {
	return t.a4
}

// C0 returns the frequency of C in octave zero.
func (t Tuning) C0() float64 {
	return t.c0
}

// Parse resolves a token into a Note.
// The pitch class is validated before the octave.
func (t Tuning) Parse(token string) (model.Note, error) {
	// The octave is the last character, not the last byte
	digit, size := utf8.DecodeLastRuneInString(token)
	name := token[:len(token)-size]
	index := slices.Index(scale[:], name)
	if index < 0 {
		return model.Note{}, &NoteError{Token: token, Err: ErrInvalidNoteName}
	}

	if digit < '0' || digit > '9' {
		return model.Note{}, &NoteError{Token: token, Err: ErrInvalidOctave}
	}
	octave := int(digit - '0')

	halfSteps := octave*12 + index
	return model.Note{
		Token:      token,
		PitchClass: name,
		Octave:     octave,
		HalfSteps:  halfSteps,
		Hz:         t.Frequency(halfSteps),
	}, nil
}

// NoteToHz returns the frequency of a token in whole hertz.
func (t Tuning) NoteToHz(token string) (int, error) {
	n, err := t.Parse(token)
	if err != nil {
		return 0, err
	}
	return n.Hz, nil
}

// Frequency returns the rounded frequency halfSteps semitones above C0.
func (t Tuning) Frequency(halfSteps int) int {
	return round(t.c0 * math.Pow(2, float64(halfSteps)/12))
}

// round rounds half away from zero. Frequencies are positive, so this
// is round-half-up.
func round(hz float64) int {
	return int(math.Round(hz))
}

// NoteToHz converts a token using the default tuning.
func NoteToHz(token string) (int, error) {
	return DefaultTuning().NoteToHz(token)
}

// Parse resolves a token using the default tuning.
func Parse(token string) (model.Note, error) {
	return DefaultTuning().Parse(token)
}

// NoteName returns the token for a MIDI key number, where 60 is C4.
func NoteName(key int) (string, error) {
	if key < 0 || key > 127 {
		return "", &NoteError{Token: fmt.Sprint(key), Err: ErrInvalidKey}
	}
	octave := key/12 - 1
	if octave < 0 {
		return "", &NoteError{Token: fmt.Sprint(key), Err: ErrInvalidOctave}
	}
	return fmt.Sprintf("%s%d", scale[key%12], octave), nil
}

// PitchClasses returns a copy of the chromatic scale.
func PitchClasses() []string {
	return slices.Clone(scale[:])
}

// ParseAll resolves every token, stopping at the first invalid one.
func (t Tuning) ParseAll(tokens []string) ([]model.Note, error) {
	notes := make([]model.Note, 0, len(tokens))
	for _, token := range tokens {
		n, err := t.Parse(token)
		if err != nil {
			return notes, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}
