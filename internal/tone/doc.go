// Package tone emits audible tones for a frequency.
//
// Two strategies are provided. SynthEmitter synthesizes a mono float32 sine
// buffer and writes it to an audio output, either the beep speaker or a
// native PulseAudio stream. BeepEmitter asks the platform tone generator to
// sound a frequency for a fixed duration. Backends are selected by name with
// New.
package tone
