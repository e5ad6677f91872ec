package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// PlainFormatter formats notes as an aligned text table.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter(opts FormatterOptions) *PlainFormatter {
	f := &PlainFormatter{opts: opts}

	// Parse custom template if provided
	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err == nil {
			f.template = tmpl
		}
	}

	return f
}

// Format writes notes as plain text.
func (f *PlainFormatter) Format(w io.Writer, notes []model.Note) error {
	if f.template != nil {
		for i := range notes {
			if err := f.template.Execute(w, templateData{Index: i + 1, Note: &notes[i]}); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		return nil
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).PaddingRight(2)
	cell := r.NewStyle().PaddingRight(2)

	headings := []string{"NOTE", "OCTAVE", "HZ", "FREQUENCY"}
	if f.opts.ShowIndex {
		headings = append([]string{"#"}, headings...)
	}

	rows := make([][]string, 0, len(notes))
	for i, n := range notes {
		row := []string{n.Token, strconv.Itoa(n.Octave), strconv.Itoa(n.Hz), FormatHertz(n.Hz)}
		if f.opts.ShowIndex {
			row = append([]string{strconv.Itoa(i + 1)}, row...)
		}
		rows = append(rows, row)
	}

	widths := make([]int, len(headings))
	for i, h := range headings {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], len(c))
		}
	}

	var sb strings.Builder
	if f.opts.ShowHeader {
		for i, h := range headings {
			sb.WriteString(header.Width(widths[i] + 2).Render(h))
		}
		sb.WriteString("\n")
	}
	for _, row := range rows {
		for i, c := range row {
			sb.WriteString(cell.Width(widths[i] + 2).Render(c))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatSession writes a one-line summary of a playback session.
func FormatSession(w io.Writer, s *model.Session) error {
	line := fmt.Sprintf("played %s notes", humanize.Comma(int64(len(s.Played))))
	if len(s.Skipped) > 0 {
		line += fmt.Sprintf(" (%s skipped)", humanize.Comma(int64(len(s.Skipped))))
	}
	line += fmt.Sprintf(" in %s via %s [%s]\n", humanElapsed(s.Elapsed()), s.Backend, s.ID)

	_, err := io.WriteString(w, line)
	return err
}

// humanElapsed renders a playback duration, e.g. "2 minutes" or "350ms".
func humanElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", ""))
}
