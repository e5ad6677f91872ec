package tone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/pitchplay/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		backend string
		want    any
	}{
		{config.BackendSpeaker, &SynthEmitter{}},
		{config.BackendPulse, &SynthEmitter{}},
		{config.BackendBeep, &BeepEmitter{}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Output.Backend = tt.backend

			e, err := New(cfg, nil)
			require.NoError(t, err)
			assert.IsType(t, tt.want, e)
			assert.Equal(t, tt.backend, e.Name())
		})
	}
}

func TestNew_SynthSettings(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Synth.SampleRate = 48000
	cfg.Synth.Volume = 0.25

	e, err := New(cfg, nil)
	require.NoError(t, err)

	synth, ok := e.(*SynthEmitter)
	require.True(t, ok)
	assert.Equal(t, 48000, synth.SampleRate())
	assert.Equal(t, 0.25, synth.Volume())
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Backend = "alsa"

	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNoteDuration(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, time.Second, NoteDuration(cfg))

	cfg.Output.Backend = config.BackendBeep
	assert.Equal(t, 299*time.Millisecond, NoteDuration(cfg))
}

func TestFrequencyError(t *testing.T) {
	err := &FrequencyError{Hz: 20, Min: 37, Max: 32767}
	assert.Equal(t, "unsupported frequency: 20 Hz outside 37-32767 Hz", err.Error())
	assert.ErrorIs(t, err, ErrUnsupportedFrequency)
}
