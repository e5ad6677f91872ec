package main

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/adapter/output"
	"github.com/jmylchreest/pitchplay/internal/config"
	"github.com/jmylchreest/pitchplay/internal/tone"
)

var renderOpts struct {
	analyze  bool
	raw      bool
	duration string
}

var renderCmd = &cobra.Command{
	Use:   "render <note>",
	Short: "Synthesize a note buffer without playing it",
	Long: `Synthesize the sample buffer for a note using the [synth] settings and
describe it. With --analyze the dominant frequency of the buffer is measured,
which should match the note's frequency to within a hertz.

With --raw the samples are written to stdout as little-endian float32 mono,
suitable for piping into e.g. 'pw-play --format f32 --channels 1 -'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().BoolVarP(&renderOpts.analyze, "analyze", "a", false,
		"Measure the dominant frequency of the synthesized buffer")
	renderCmd.Flags().BoolVar(&renderOpts.raw, "raw", false,
		"Write raw float32 samples to stdout instead of a description")
	renderCmd.Flags().StringVarP(&renderOpts.duration, "duration", "d", "",
		"Buffer length, e.g. 250ms or 250 (default from config)")
}

func runRender(cmd *cobra.Command, args []string) error {
	tuning, err := getTuning()
	if err != nil {
		return err
	}

	note, err := tuning.Parse(args[0])
	if err != nil {
		return err
	}

	d := cfg.Synth.Duration.Duration()
	if renderOpts.duration != "" {
		if d, err = config.ParseDuration(renderOpts.duration); err != nil {
			return err
		}
	}
	rate := cfg.Synth.SampleRate

	samples := tone.Synthesize(note.Hz, d, rate, cfg.Synth.Volume)

	w := cmd.OutOrStdout()
	if renderOpts.raw {
		return binary.Write(w, binary.LittleEndian, samples)
	}

	fmt.Fprintf(w, "note:        %s (%s)\n", note.Token, output.FormatHertz(note.Hz))
	fmt.Fprintf(w, "samples:     %d at %d Hz (%s)\n", len(samples), rate, d)
	fmt.Fprintf(w, "peak:        %.3f\n", tone.Peak(samples))
	if renderOpts.analyze {
		fmt.Fprintf(w, "dominant:    %.1f Hz\n", tone.DominantFrequency(samples, rate))
	}
	return nil
}
