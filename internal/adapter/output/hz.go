package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// HzFormatter outputs just the frequencies, one per line.
// Useful for piping to other commands.
type HzFormatter struct{}

// NewHzFormatter creates a new frequency-only formatter.
func NewHzFormatter() *HzFormatter {
	return &HzFormatter{}
}

// Format writes each frequency in hertz on its own line.
func (f *HzFormatter) Format(w io.Writer, notes []model.Note) error {
	for _, n := range notes {
		if _, err := fmt.Fprintln(w, n.Hz); err != nil {
			return err
		}
	}
	return nil
}
