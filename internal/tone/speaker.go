package tone

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// speakerLatency is the size of the speaker's internal buffer.
const speakerLatency = 100 * time.Millisecond

// SpeakerOutput plays buffers through the beep speaker.
type SpeakerOutput struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Whether speaker has been initialized
	initialized bool

	sampleRate beep.SampleRate
}

// NewSpeakerOutput creates a new speaker output.
func NewSpeakerOutput(logger *slog.Logger) *SpeakerOutput {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeakerOutput{logger: logger}
}

// Open initializes the speaker at sampleRate.
func (o *SpeakerOutput) Open(_ context.Context, sampleRate int) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return nil
	}

	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(speakerLatency)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}

	o.sampleRate = sr
	o.initialized = true
	o.logger.Debug("speaker initialized", "sample_rate", sr)
	return nil
}

// Write plays samples and blocks until the speaker has pulled all of them.
func (o *SpeakerOutput) Write(ctx context.Context, samples []float32) error {
	o.mu.Lock()
	initialized := o.initialized
	o.mu.Unlock()

	if !initialized {
		return ErrNotOpen
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(monoStreamer(samples), beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// Close stops playback and closes the speaker.
func (o *SpeakerOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		speaker.Clear()
		speaker.Close()
		o.initialized = false
	}
	return nil
}

// monoStreamer streams a mono buffer to both speaker channels.
func monoStreamer(samples []float32) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(buf, samples[pos:])
		pos += n
		return n, true
	})
}

// copy2 duplicates mono samples into stereo frames and returns how many were copied.
func copy2(dst [][2]float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		s := float64(src[i])
		dst[i] = [2]float64{s, s}
	}
	return n
}
