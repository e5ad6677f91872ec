package input

import (
	"context"
	"io"
	"os"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// StdinAdapter reads note text from standard input.
type StdinAdapter struct {
	reader io.Reader
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter() *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader) *StdinAdapter {
	return &StdinAdapter{reader: r}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Load reads all of standard input as plain note text.
func (a *StdinAdapter) Load(_ context.Context) (model.Sequence, error) {
	const maxSize = 10 * 1024 * 1024 // 10MB max
	data, err := io.ReadAll(io.LimitReader(a.reader, maxSize))
	if err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	tokens, err := parseText(string(data))
	if err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "failed to parse stdin",
			Err:     err,
		}
	}

	return finish(a.Name(), model.Sequence{
		Name:   "stdin",
		Source: a.Name(),
		Tokens: tokens,
	})
}
