package input

import (
	"context"
	"slices"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// ArgsAdapter serves tokens given on the command line.
type ArgsAdapter struct {
	tokens []string
}

// NewArgsAdapter creates an adapter for the given tokens.
// Each argument may itself hold several whitespace-separated tokens.
func NewArgsAdapter(args []string) *ArgsAdapter {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, model.Tokenize(arg)...)
	}
	return &ArgsAdapter{tokens: tokens}
}

// Name returns the adapter identifier.
func (a *ArgsAdapter) Name() string {
	return "args"
}

// Load returns the tokens as a sequence.
func (a *ArgsAdapter) Load(_ context.Context) (model.Sequence, error) {
	return finish(a.Name(), model.Sequence{
		Name:   "command line",
		Source: a.Name(),
		Tokens: slices.Clone(a.tokens),
	})
}
