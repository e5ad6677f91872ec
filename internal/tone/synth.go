package tone

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"
)

// Output is an audio device that accepts mono float32 sample buffers.
type Output interface {
	// Open starts the device at the given sample rate.
	Open(ctx context.Context, sampleRate int) error

	// Write blocks until the device has accepted every sample.
	Write(ctx context.Context, samples []float32) error

	// Close stops and releases the device.
	Close() error
}

// Synthesize returns a sine wave of hz lasting d at sampleRate, scaled by volume.
// The buffer holds exactly sampleRate*d samples.
func Synthesize(hz int, d time.Duration, sampleRate int, volume float64) []float32 {
	count := int(int64(sampleRate) * int64(d) / int64(time.Second))
	if count <= 0 {
		return nil
	}

	samples := make([]float32, count)
	step := 2 * math.Pi * float64(hz) / float64(sampleRate)
	for i := range samples {
		samples[i] = float32(volume * math.Sin(step*float64(i)))
	}
	return samples
}

// SynthEmitter synthesizes each tone into a buffer and writes it to an Output.
type SynthEmitter struct {
	mu     sync.Mutex
	logger *slog.Logger
	name   string
	out    Output

	sampleRate int
	volume     float64
	open       bool
}

// NewSynthEmitter creates a synthesizing emitter writing to out.
func NewSynthEmitter(name string, out Output, sampleRate int, volume float64, logger *slog.Logger) *SynthEmitter {
	if logger == nil {
		logger = slog.Default()
	}

	// Clamp volume to full scale
	volume = max(0, min(1, volume))

	return &SynthEmitter{
		logger:     logger,
		name:       name,
		out:        out,
		sampleRate: sampleRate,
		volume:     volume,
	}
}

// Name returns the backend identifier.
func (e *SynthEmitter) Name() string {
	return e.name
}

// SampleRate returns the output sample rate.
func (e *SynthEmitter) SampleRate() int {
	return e.sampleRate
}

// Volume returns the amplitude scalar applied to every sample.
func (e *SynthEmitter) Volume() float64 {
	return e.volume
}

// Open opens the output device.
func (e *SynthEmitter) Open(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.open {
		return nil
	}
	if err := e.out.Open(ctx, e.sampleRate); err != nil {
		return fmt.Errorf("failed to open %s output: %w", e.name, err)
	}
	e.open = true
	e.logger.Debug("output opened", "backend", e.name, "sample_rate", e.sampleRate)
	return nil
}

// PlayTone synthesizes hz for d and writes it to the output.
func (e *SynthEmitter) PlayTone(ctx context.Context, hz int, d time.Duration) error {
	e.mu.Lock()
	open := e.open
	e.mu.Unlock()

	if !open {
		return ErrNotOpen
	}
	if hz <= 0 || hz*2 > e.sampleRate {
		return &FrequencyError{Hz: hz, Min: 1, Max: e.sampleRate / 2}
	}

	samples := Synthesize(hz, d, e.sampleRate, e.volume)
	e.logger.Debug("writing tone", "backend", e.name, "hz", hz, "samples", len(samples))
	return e.out.Write(ctx, samples)
}

// Close stops and closes the output device.
func (e *SynthEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return nil
	}
	e.open = false
	if err := e.out.Close(); err != nil {
		return fmt.Errorf("failed to close %s output: %w", e.name, err)
	}
	e.logger.Debug("output closed", "backend", e.name)
	return nil
}
