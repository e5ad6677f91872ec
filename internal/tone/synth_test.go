package tone

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingOutput captures every buffer written to it.
type recordingOutput struct {
	opened  int
	closed  int
	rate    int
	buffers [][]float32

	openErr  error
	writeErr error
}

func (o *recordingOutput) Open(_ context.Context, sampleRate int) error {
	if o.openErr != nil {
		return o.openErr
	}
	o.opened++
	o.rate = sampleRate
	return nil
}

func (o *recordingOutput) Write(_ context.Context, samples []float32) error {
	if o.writeErr != nil {
		return o.writeErr
	}
	o.buffers = append(o.buffers, samples)
	return nil
}

func (o *recordingOutput) Close() error {
	o.closed++
	return nil
}

func TestSynthesize_OneSecond(t *testing.T) {
	samples := Synthesize(440, time.Second, 44100, 0.5)

	require.Len(t, samples, 44100)
	for i, s := range samples {
		require.LessOrEqual(t, math.Abs(float64(s)), 0.5, "sample %d", i)
	}
	assert.Equal(t, float32(0), samples[0])
	assert.InDelta(t, 0.5, Peak(samples), 0.001)
}

func TestSynthesize_Formula(t *testing.T) {
	samples := Synthesize(1000, 10*time.Millisecond, 8000, 0.5)
	require.Len(t, samples, 80)

	for i, s := range samples {
		want := 0.5 * math.Sin(2*math.Pi*float64(i)*1000/8000)
		assert.InDelta(t, want, float64(s), 1e-6, "sample %d", i)
	}
}

func TestSynthesize_DominantFrequency(t *testing.T) {
	for _, hz := range []int{233, 440, 466, 494, 1047, 7902} {
		samples := Synthesize(hz, time.Second, 44100, 0.5)
		assert.InDelta(t, float64(hz), DominantFrequency(samples, 44100), 1, "%d Hz", hz)
	}
}

func TestSynthesize_Empty(t *testing.T) {
	assert.Nil(t, Synthesize(440, 0, 44100, 0.5))
}

func TestSynthEmitter_PlayTone(t *testing.T) {
	out := &recordingOutput{}
	e := NewSynthEmitter("test", out, 44100, 0.5, nil)

	ctx := context.Background()
	require.NoError(t, e.Open(ctx))
	assert.Equal(t, 44100, out.rate)

	require.NoError(t, e.PlayTone(ctx, 440, time.Second))
	require.NoError(t, e.PlayTone(ctx, 466, time.Second))
	require.NoError(t, e.Close())

	require.Len(t, out.buffers, 2)
	assert.Len(t, out.buffers[0], 44100)
	assert.InDelta(t, 440, DominantFrequency(out.buffers[0], 44100), 1)
	assert.InDelta(t, 466, DominantFrequency(out.buffers[1], 44100), 1)
	assert.Equal(t, 1, out.opened)
	assert.Equal(t, 1, out.closed)
}

func TestSynthEmitter_OpenAndCloseIdempotent(t *testing.T) {
	out := &recordingOutput{}
	e := NewSynthEmitter("test", out, 44100, 0.5, nil)

	ctx := context.Background()
	require.NoError(t, e.Open(ctx))
	require.NoError(t, e.Open(ctx))
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())

	assert.Equal(t, 1, out.opened)
	assert.Equal(t, 1, out.closed)
}

func TestSynthEmitter_NotOpen(t *testing.T) {
	e := NewSynthEmitter("test", &recordingOutput{}, 44100, 0.5, nil)
	assert.ErrorIs(t, e.PlayTone(context.Background(), 440, time.Second), ErrNotOpen)
}

func TestSynthEmitter_OpenFailure(t *testing.T) {
	busy := errors.New("device busy")
	e := NewSynthEmitter("test", &recordingOutput{openErr: busy}, 44100, 0.5, nil)

	err := e.Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, busy)
	assert.Contains(t, err.Error(), "failed to open test output")
}

func TestSynthEmitter_AboveNyquist(t *testing.T) {
	e := NewSynthEmitter("test", &recordingOutput{}, 8000, 0.5, nil)
	require.NoError(t, e.Open(context.Background()))

	err := e.PlayTone(context.Background(), 4001, time.Second)
	assert.ErrorIs(t, err, ErrUnsupportedFrequency)
}

func TestSynthEmitter_ClampsVolume(t *testing.T) {
	assert.Equal(t, 1.0, NewSynthEmitter("test", &recordingOutput{}, 44100, 3, nil).Volume())
	assert.Equal(t, 0.0, NewSynthEmitter("test", &recordingOutput{}, 44100, -1, nil).Volume())
}

func TestMonoStreamer(t *testing.T) {
	s := monoStreamer([]float32{0.1, 0.2, 0.3})

	buf := make([][2]float64, 2)
	n, ok := s.Stream(buf)
	assert.Equal(t, 2, n)
	assert.True(t, ok)
	assert.InDelta(t, 0.1, buf[0][0], 1e-6)
	assert.Equal(t, buf[0][0], buf[0][1])

	n, ok = s.Stream(buf)
	assert.Equal(t, 1, n)
	assert.True(t, ok)
	assert.InDelta(t, 0.3, buf[0][1], 1e-6)

	n, ok = s.Stream(buf)
	assert.Equal(t, 0, n)
	assert.False(t, ok)
}

func TestPeak(t *testing.T) {
	assert.Equal(t, 0.0, Peak(nil))
	assert.InDelta(t, 0.7, Peak([]float32{0.1, -0.7, 0.5}), 1e-6)
}

func TestDominantFrequency_Short(t *testing.T) {
	assert.Equal(t, 0.0, DominantFrequency(nil, 44100))
	assert.Equal(t, 0.0, DominantFrequency([]float32{1}, 44100))
}
