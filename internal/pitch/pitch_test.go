package pitch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteToHz(t *testing.T) {
	tests := []struct {
		token string
		want  int
	}{
		{"A4", 440},
		{"A#4", 466},
		{"B4", 494},
		{"C4", 262},
		{"C5", 523},
		{"C0", 16},
		{"C#0", 17},
		{"A#3", 233},
		{"D4", 294},
		{"D#4", 311},
		{"F4", 349},
		{"B8", 7902},
		{"C9", 8372},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := NoteToHz(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoteToHz_OctaveDoubling(t *testing.T) {
	for octave := 0; octave <= 8; octave++ {
		for _, name := range PitchClasses() {
			low, err := NoteToHz(name + string(rune('0'+octave)))
			require.NoError(t, err)
			high, err := NoteToHz(name + string(rune('0'+octave+1)))
			require.NoError(t, err)

			assert.InDelta(t, round(float64(low)*2), high, 1, "%s%d", name, octave)
		}
	}
}

func TestNoteToHz_Deterministic(t *testing.T) {
	for _, token := range []string{"C0", "A4", "F#6", "B9"} {
		first, err := NoteToHz(token)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := NoteToHz(token)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestNoteToHz_Errors(t *testing.T) {
	tests := []struct {
		token   string
		wantErr error
	}{
		{"H4", ErrInvalidNoteName},
		{"Z3", ErrInvalidNoteName},
		{"Bb4", ErrInvalidNoteName},
		{"a4", ErrInvalidNoteName},
		{"", ErrInvalidNoteName},
		{"4", ErrInvalidNoteName},
		{"Hx", ErrInvalidNoteName},
		{"A#x", ErrInvalidOctave},
		{"C-", ErrInvalidOctave},
		{"A#é", ErrInvalidOctave},
		{"Eé", ErrInvalidOctave},
		{"é4", ErrInvalidNoteName},
		{"A", ErrInvalidNoteName},
		{"A10", ErrInvalidNoteName},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			_, err := NoteToHz(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var noteErr *NoteError
			require.True(t, errors.As(err, &noteErr))
			assert.Equal(t, tt.token, noteErr.Token)
		})
	}
}

func TestRound_HalfUp(t *testing.T) {
	assert.Equal(t, 3, round(2.5))
	assert.Equal(t, 28, round(27.5))
	assert.Equal(t, 440, round(439.99999999999994))
	assert.Equal(t, 466, round(466.1637615180898))
	assert.Equal(t, 1047, round(1046.5022612023945))
}

func TestParse(t *testing.T) {
	n, err := Parse("A#3")
	require.NoError(t, err)

	assert.Equal(t, "A#3", n.Token)
	assert.Equal(t, "A#", n.PitchClass)
	assert.Equal(t, 3, n.Octave)
	assert.Equal(t, 46, n.HalfSteps)
	assert.Equal(t, 233, n.Hz)
}

func TestNewTuning(t *testing.T) {
	tuning, err := NewTuning(432)
	require.NoError(t, err)
	assert.Equal(t, 432.0, tuning.A4())

	hz, err := tuning.NoteToHz("A4")
	require.NoError(t, err)
	assert.Equal(t, 432, hz)

	hz, err = tuning.NoteToHz("A5")
	require.NoError(t, err)
	assert.Equal(t, 864, hz)

	_, err = NewTuning(0)
	assert.ErrorIs(t, err, ErrInvalidTuning)
	_, err = NewTuning(-440)
	assert.ErrorIs(t, err, ErrInvalidTuning)
}

func TestDefaultTuning_C0(t *testing.T) {
	assert.InDelta(t, 16.3516, DefaultTuning().C0(), 0.0001)
}

func TestNoteName(t *testing.T) {
	tests := []struct {
		key  int
		want string
	}{
		{60, "C4"},
		{69, "A4"},
		{70, "A#4"},
		{12, "C0"},
		{127, "G9"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := NoteName(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// Every converted name must parse back.
			_, err = Parse(got)
			assert.NoError(t, err)
		})
	}

	t.Run("below octave zero", func(t *testing.T) {
		_, err := NoteName(11)
		assert.ErrorIs(t, err, ErrInvalidOctave)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := NoteName(128)
		assert.ErrorIs(t, err, ErrInvalidKey)
		_, err = NoteName(-1)
		assert.ErrorIs(t, err, ErrInvalidKey)
	})
}

func TestPitchClasses_Copy(t *testing.T) {
	classes := PitchClasses()
	require.Len(t, classes, 12)
	classes[0] = "X"
	assert.Equal(t, "C", PitchClasses()[0])
}

func TestParseAll(t *testing.T) {
	notes, err := DefaultTuning().ParseAll([]string{"A4", "A#4", "B4"})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []int{440, 466, 494}, []int{notes[0].Hz, notes[1].Hz, notes[2].Hz})

	notes, err = DefaultTuning().ParseAll([]string{"A4", "H4", "B4"})
	assert.ErrorIs(t, err, ErrInvalidNoteName)
	assert.Len(t, notes, 1)
}
