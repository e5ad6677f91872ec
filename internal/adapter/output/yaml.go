package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// YAMLFormatter formats notes as a YAML list.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes notes as YAML.
func (f *YAMLFormatter) Format(w io.Writer, notes []model.Note) error {
	if notes == nil {
		notes = []model.Note{}
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return err
	}
	return encoder.Close()
}
