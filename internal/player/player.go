// Package player plays note sequences through a tone emitter.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/pitchplay/internal/model"
	"github.com/jmylchreest/pitchplay/internal/pitch"
	"github.com/jmylchreest/pitchplay/internal/tone"
)

// Options configures playback.
type Options struct {
	// Duration is how long each note sounds.
	Duration time.Duration

	// Strict makes unsupported frequencies fail playback instead of
	// being skipped with a warning.
	Strict bool
}

// Player converts tokens to frequencies and plays them one at a time.
type Player struct {
	logger  *slog.Logger
	tuning  pitch.Tuning
	emitter tone.Emitter
	opts    Options
}

// New creates a player for the given tuning and emitter.
func New(tuning pitch.Tuning, emitter tone.Emitter, opts Options, logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}

	return &Player{
		logger:  logger,
		tuning:  tuning,
		emitter: emitter,
		opts:    opts,
	}
}

// Play opens the emitter, plays every token in order and closes the
// emitter on all paths. The returned session is non-nil whenever the
// sequence was valid, including on failure, and records the notes that
// were played before the error.
func (p *Player) Play(ctx context.Context, seq model.Sequence) (session *model.Session, err error) {
	if err := seq.Validate(); err != nil {
		return nil, err
	}

	session, err = model.NewSession(seq, p.emitter.Name())
	if err != nil {
		return nil, err
	}

	if err := p.emitter.Open(ctx); err != nil {
		session.Finish()
		return session, err
	}

	defer func() {
		if cerr := p.emitter.Close(); cerr != nil {
			p.logger.Warn("failed to close emitter", "backend", p.emitter.Name(), "error", cerr)
			err = errors.Join(err, cerr)
		}
		session.Finish()
	}()

	p.logger.Info("playing sequence",
		"session", session.ID,
		"sequence", seq.Name,
		"notes", seq.Len(),
		"backend", p.emitter.Name())

	for i, token := range seq.Tokens {
		if err := ctx.Err(); err != nil {
			return session, err
		}

		note, err := p.tuning.Parse(token)
		if err != nil {
			return session, fmt.Errorf("note %d: %w", i+1, err)
		}

		if err := p.emitter.PlayTone(ctx, note.Hz, p.opts.Duration); err != nil {
			if !p.opts.Strict && errors.Is(err, tone.ErrUnsupportedFrequency) {
				p.logger.Warn("skipping note", "note", token, "hz", note.Hz, "error", err)
				session.Skipped = append(session.Skipped, note)
				continue
			}
			return session, fmt.Errorf("failed to play %s: %w", token, err)
		}

		p.logger.Debug("played note", "index", i+1, "note", token, "hz", note.Hz)
		session.Played = append(session.Played, note)
	}

	return session, nil
}
