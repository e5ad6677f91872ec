// Package input provides input adapters for note sequence sources.
package input

import (
	"bufio"
	"context"
	"strings"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// InputAdapter loads a note sequence from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Load reads the sequence from the source.
	Load(ctx context.Context) (model.Sequence, error)
}

// NewAdapter creates an InputAdapter for the specified source.
// value is the file path for "file" and the song name for "embedded";
// it is ignored for "stdin".
func NewAdapter(source, value string) (InputAdapter, error) {
	switch source {
	case "file":
		return NewFileAdapter(value), nil
	case "stdin":
		return NewStdinAdapter(), nil
	case "embedded":
		return NewEmbeddedAdapter(value), nil
	case "args":
		return NewArgsAdapter(model.Tokenize(value)), nil
	default:
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown sequence source",
		}
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}

// parseText extracts note tokens from plain text.
// Lines whose first non-blank character is '#' are comments.
func parseText(text string) ([]string, error) {
	var tokens []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	const maxSize = 1024 * 1024 // 1MB per line
	scanner.Buffer(make([]byte, 64*1024), maxSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		tokens = append(tokens, model.Tokenize(line)...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// finish validates a sequence, wrapping an empty one in an AdapterError.
func finish(source string, seq model.Sequence) (model.Sequence, error) {
	if err := seq.Validate(); err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  source,
			Message: "no notes in " + seq.Name,
			Err:     err,
		}
	}
	return seq, nil
}
