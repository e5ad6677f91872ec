// Package model defines the core data structures for pitchplay.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Note is a parsed note token resolved to a frequency.
type Note struct {
	Token      string `json:"token" yaml:"token"`
	PitchClass string `json:"pitch_class" yaml:"pitch_class"`
	Octave     int    `json:"octave" yaml:"octave"`
	HalfSteps  int    `json:"half_steps" yaml:"half_steps"`
	Hz         int    `json:"hz" yaml:"hz"`
}

// String returns the original token.
func (n Note) String() string {
	return n.Token
}

// Sequence is an ordered list of note tokens from a single source.
type Sequence struct {
	Name   string   `json:"name" yaml:"name"`
	Source string   `json:"source" yaml:"source"`
	Tokens []string `json:"tokens" yaml:"tokens"`
}

// Validation errors.
var (
	ErrEmptySequence = errors.New("sequence has no notes")
)

// Tokenize splits note text on any whitespace.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// NewSequence builds a sequence from whitespace-separated note text.
func NewSequence(name, source, text string) Sequence {
	return Sequence{
		Name:   name,
		Source: source,
		Tokens: Tokenize(text),
	}
}

// Validate checks that the sequence has at least one token.
func (s Sequence) Validate() error {
	if len(s.Tokens) == 0 {
		return ErrEmptySequence
	}
	return nil
}

// Len returns the number of tokens.
func (s Sequence) Len() int {
	return len(s.Tokens)
}

// Session records a single playback run.
type Session struct {
	ID         string    `json:"id" yaml:"id"`
	Sequence   string    `json:"sequence" yaml:"sequence"`
	Source     string    `json:"source" yaml:"source"`
	Backend    string    `json:"backend" yaml:"backend"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty" yaml:"finished_at,omitempty"`
	Played     []Note    `json:"played" yaml:"played"`
	Skipped    []Note    `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewSession creates a new Session with a generated ULID.
func NewSession(seq Sequence, backend string) (*Session, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return &Session{
		ID:        id.String(),
		Sequence:  seq.Name,
		Source:    seq.Source,
		Backend:   backend,
		StartedAt: time.Now(),
	}, nil
}

// Finish marks the session as finished at the current time.
func (s *Session) Finish() {
	if s.FinishedAt.IsZero() {
		s.FinishedAt = time.Now()
	}
}

// Elapsed returns how long the session ran.
// An unfinished session reports time since it started.
func (s *Session) Elapsed() time.Duration {
	if s.FinishedAt.IsZero() {
		return time.Since(s.StartedAt)
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// Frequencies returns the frequencies of the played notes in order.
func (s *Session) Frequencies() []int {
	hz := make([]int, len(s.Played))
	for i, n := range s.Played {
		hz[i] = n.Hz
	}
	return hz
}
