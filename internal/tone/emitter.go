package tone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/pitchplay/internal/config"
)

// Emitter plays one tone at a time.
type Emitter interface {
	// Name returns the backend identifier (e.g., "speaker", "beep").
	Name() string

	// Open acquires the output device. It must be called before PlayTone.
	Open(ctx context.Context) error

	// PlayTone sounds hz for d and blocks at least until the device has
	// accepted the whole tone.
	PlayTone(ctx context.Context, hz int, d time.Duration) error

	// Close releases the output device.
	Close() error
}

// Emitter errors.
var (
	ErrUnknownBackend       = errors.New("unknown tone backend")
	ErrUnsupportedFrequency = errors.New("unsupported frequency")
	ErrNotOpen              = errors.New("emitter is not open")
)

// FrequencyError reports a frequency the backend cannot produce.
type FrequencyError struct {
	Hz       int
	Min, Max int
}

func (e *FrequencyError) Error() string {
	return fmt.Sprintf("%s: %d Hz outside %d-%d Hz", ErrUnsupportedFrequency, e.Hz, e.Min, e.Max)
}

func (e *FrequencyError) Unwrap() error {
	return ErrUnsupportedFrequency
}

// New creates the emitter named by cfg.Output.Backend.
func New(cfg *config.Config, logger *slog.Logger) (Emitter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Output.Backend {
	case config.BackendSpeaker:
		return NewSynthEmitter(config.BackendSpeaker, NewSpeakerOutput(logger), cfg.Synth.SampleRate, cfg.Synth.Volume, logger), nil
	case config.BackendPulse:
		return NewSynthEmitter(config.BackendPulse, NewPulseOutput(logger), cfg.Synth.SampleRate, cfg.Synth.Volume, logger), nil
	case config.BackendBeep:
		return NewBeepEmitter(cfg.Beep, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Output.Backend)
	}
}

// NoteDuration returns how long each note lasts for the configured backend.
func NoteDuration(cfg *config.Config) time.Duration {
	if cfg.Output.Backend == config.BackendBeep {
		return cfg.Beep.Duration.Duration()
	}
	return cfg.Synth.Duration.Duration()
}
