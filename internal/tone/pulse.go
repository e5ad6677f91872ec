package tone

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jfreymuth/pulse"
)

// pulseLatency is the server-side buffer length in seconds. Without it the
// server picks a buffer large enough to swallow a whole note on the first
// request, and the stream never reports that it started.
const pulseLatency = 0.1

// playbackStream is the part of *pulse.PlaybackStream used by PulseOutput.
type playbackStream interface {
	Start()
	Drain()
	Stop()
	Close()
	Underflow() bool
	Error() error
}

// playbackClient is the part of *pulse.Client used by PulseOutput.
type playbackClient interface {
	newPlayback(r pulse.Reader, opts ...pulse.PlaybackOption) (playbackStream, error)
	Close()
}

// nativeClient adapts *pulse.Client to playbackClient.
type nativeClient struct {
	*pulse.Client
}

func (c nativeClient) newPlayback(r pulse.Reader, opts ...pulse.PlaybackOption) (playbackStream, error) {
	stream, err := c.NewPlayback(r, opts...)
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func connectPulse() (playbackClient, error) {
	client, err := pulse.NewClient(pulse.ClientApplicationName("pitchplay"))
	if err != nil {
		return nil, err
	}
	return nativeClient{client}, nil
}

// PulseOutput plays buffers through a native PulseAudio connection.
// The client connection is held for the lifetime of the output; each
// buffer gets its own mono float32 playback stream.
type PulseOutput struct {
	mu      sync.Mutex
	logger  *slog.Logger
	connect func() (playbackClient, error)

	client     playbackClient
	sampleRate int
}

// NewPulseOutput creates a new PulseAudio output.
func NewPulseOutput(logger *slog.Logger) *PulseOutput {
	if logger == nil {
		logger = slog.Default()
	}
	return &PulseOutput{logger: logger, connect: connectPulse}
}

// Open connects to the PulseAudio server.
func (o *PulseOutput) Open(_ context.Context, sampleRate int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		return nil
	}

	client, err := o.connect()
	if err != nil {
		return fmt.Errorf("failed to connect to pulseaudio: %w", err)
	}

	o.client = client
	o.sampleRate = sampleRate
	o.logger.Debug("pulseaudio connected", "sample_rate", sampleRate)
	return nil
}

// Write streams samples and blocks until the server has drained them.
func (o *PulseOutput) Write(ctx context.Context, samples []float32) error {
	o.mu.Lock()
	client := o.client
	sampleRate := o.sampleRate
	o.mu.Unlock()

	if client == nil {
		return ErrNotOpen
	}

	pos := 0
	reader := pulse.Float32Reader(func(out []float32) (int, error) {
		if pos >= len(samples) {
			return 0, pulse.EndOfData
		}
		n := copy(out, samples[pos:])
		pos += n
		return n, nil
	})

	// Latency must follow the rate and channel options
	stream, err := client.newPlayback(reader,
		pulse.PlaybackMono,
		pulse.PlaybackSampleRate(sampleRate),
		pulse.PlaybackLatency(pulseLatency),
		pulse.PlaybackMediaName("tones"),
	)
	if err != nil {
		return fmt.Errorf("failed to create playback stream: %w", err)
	}
	defer stream.Close()

	stream.Start()

	done := make(chan struct{})
	go func() {
		stream.Drain()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		stream.Stop()
		// Deleting the stream answers the pending drain request
		stream.Close()
		<-done
		return ctx.Err()
	}

	if stream.Underflow() {
		o.logger.Debug("pulseaudio stream underflow")
	}
	return stream.Error()
}

// Close disconnects from the PulseAudio server.
func (o *PulseOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.client != nil {
		o.client.Close()
		o.client = nil
	}
	return nil
}
