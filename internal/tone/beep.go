package tone

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/jmylchreest/pitchplay/internal/config"
)

// BeepFunc sounds freq for ms milliseconds and blocks until it finishes.
type BeepFunc func(freq float64, ms int) error

// BeepEmitter asks the platform tone generator for each note.
type BeepEmitter struct {
	mu     sync.Mutex
	logger *slog.Logger

	beep  BeepFunc
	sleep func(ctx context.Context, d time.Duration) error

	gap      time.Duration
	min, max int
	open     bool
}

// NewBeepEmitter creates a platform tone emitter from beep settings.
func NewBeepEmitter(cfg config.BeepConfig, logger *slog.Logger) *BeepEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	return &BeepEmitter{
		logger: logger,
		beep:   beeep.Beep,
		sleep:  sleepContext,
		gap:    cfg.Gap.Duration(),
		min:    cfg.MinHz,
		max:    cfg.MaxHz,
	}
}

// SetBeepFunc replaces the platform tone call.
func (e *BeepEmitter) SetBeepFunc(fn BeepFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.beep = fn
}

// Name returns the backend identifier.
func (e *BeepEmitter) Name() string {
	return config.BackendBeep
}

// Open marks the emitter ready. The platform tone has no device to acquire.
func (e *BeepEmitter) Open(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = true
	return nil
}

// PlayTone sounds hz for d, then waits for the configured gap.
// Frequencies outside the supported range return a *FrequencyError.
func (e *BeepEmitter) PlayTone(ctx context.Context, hz int, d time.Duration) error {
	e.mu.Lock()
	open, beep := e.open, e.beep
	e.mu.Unlock()

	if !open {
		return ErrNotOpen
	}
	if hz < e.min || hz > e.max {
		return &FrequencyError{Hz: hz, Min: e.min, Max: e.max}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.logger.Debug("beep", "hz", hz, "duration", d)
	if err := beep(float64(hz), int(d.Milliseconds())); err != nil {
		return err
	}

	// Gap between notes
	return e.sleep(ctx, e.gap)
}

// Close marks the emitter closed.
func (e *BeepEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
