package output

import (
	"encoding/json"
	"io"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// JSONFormatter formats notes as JSON.
type JSONFormatter struct {
	opts FormatterOptions
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(opts FormatterOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Format writes notes as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(notes)
}

// FormatSession writes a playback session as JSON.
func (f *JSONFormatter) FormatSession(w io.Writer, s *model.Session) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s)
}
