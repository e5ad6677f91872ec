// Package output provides output formatters for resolved notes.
package output

import (
	"io"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// Formatter formats notes for output.
type Formatter interface {
	// Format writes formatted notes to the writer.
	Format(w io.Writer, notes []model.Note) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatHz    FormatType = "hz"
)

// ValidFormats returns all valid format names.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML, FormatHz}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts)
	case FormatYAML:
		return NewYAMLFormatter(opts)
	case FormatHz:
		return NewHzFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter(opts)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for plain format
	ShowIndex  bool   // Show 1-based index column
	ShowHeader bool   // Show column headings
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  true,
		ShowHeader: true,
	}
}

// templateData is passed to custom templates.
type templateData struct {
	Index int
	Note  *model.Note
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"si": FormatHertz,
	}
}

// FormatHertz renders a frequency with an SI prefix, e.g. "440 Hz" or "1.047 kHz".
func FormatHertz(hz int) string {
	return humanize.SI(float64(hz), "Hz")
}
