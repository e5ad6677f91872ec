package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pitchplay/internal/model"
)

func testNotes() []model.Note {
	return []model.Note{
		{Token: "A4", PitchClass: "A", Octave: 4, HalfSteps: 57, Hz: 440},
		{Token: "A#4", PitchClass: "A#", Octave: 4, HalfSteps: 58, Hz: 466},
		{Token: "C6", PitchClass: "C", Octave: 6, HalfSteps: 72, Hz: 1047},
	}
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	formatter := NewPlainFormatter(DefaultFormatterOptions())
	require.NoError(t, formatter.Format(&buf, testNotes()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "NOTE")
	assert.Contains(t, lines[0], "FREQUENCY")

	assert.True(t, strings.HasPrefix(lines[1], "1"))
	assert.Contains(t, lines[1], "A4")
	assert.Contains(t, lines[1], "440 Hz")
	assert.Contains(t, lines[2], "A#4")
	assert.Contains(t, lines[2], "466")
	assert.Contains(t, lines[3], "1.047 kHz")

	// Columns are aligned
	assert.Equal(t, strings.Index(lines[1], "A4"), strings.Index(lines[2], "A#4"))
}

func TestPlainFormatter_NoIndexNoHeader(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.ShowIndex = false
	opts.ShowHeader = false
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testNotes()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "A4"))
}

func TestPlainFormatter_CustomTemplate(t *testing.T) {
	var buf bytes.Buffer

	opts := DefaultFormatterOptions()
	opts.Template = "{{.Index}}: {{.Note.Token}} = {{si .Note.Hz}}"
	require.NoError(t, NewPlainFormatter(opts).Format(&buf, testNotes()))

	assert.Equal(t, "1: A4 = 440 Hz\n2: A#4 = 466 Hz\n3: C6 = 1.047 kHz\n", buf.String())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, testNotes()))

	var decoded []model.Note
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testNotes(), decoded)
	assert.Contains(t, buf.String(), `"half_steps": 57`)
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(DefaultFormatterOptions()).Format(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewYAMLFormatter(DefaultFormatterOptions()).Format(&buf, testNotes()))

	var decoded []model.Note
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testNotes(), decoded)
	assert.Contains(t, buf.String(), "token: A4")
}

func TestHzFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewHzFormatter().Format(&buf, testNotes()))
	assert.Equal(t, "440\n466\n1047\n", buf.String())
}

func TestNewFormatter(t *testing.T) {
	opts := DefaultFormatterOptions()
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain, opts))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON, opts))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML, opts))
	assert.IsType(t, &HzFormatter{}, NewFormatter(FormatHz, opts))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown", opts))
}

func TestFormatHertz(t *testing.T) {
	assert.Equal(t, "440 Hz", FormatHertz(440))
	assert.Equal(t, "1.047 kHz", FormatHertz(1047))
	assert.Equal(t, "16 Hz", FormatHertz(16))
}

func TestFormatSession(t *testing.T) {
	start := time.Now().Add(-3 * time.Minute)
	s := &model.Session{
		ID:         "01HZX3M9Q7YB8D1Y8V6E8F4K2T",
		Backend:    "speaker",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Minute),
		Played:     testNotes(),
		Skipped:    []model.Note{{Token: "C0", Hz: 16}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatSession(&buf, s))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "played 3 notes (1 skipped) in "))
	assert.Contains(t, out, "minutes")
	assert.Contains(t, out, "via speaker [01HZX3M9Q7YB8D1Y8V6E8F4K2T]")
}

func TestHumanElapsed(t *testing.T) {
	assert.Equal(t, "350ms", humanElapsed(350*time.Millisecond))
	assert.Equal(t, "0s", humanElapsed(0))
}
