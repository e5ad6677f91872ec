package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/adapter/output"
	"github.com/jmylchreest/pitchplay/internal/model"
	"github.com/jmylchreest/pitchplay/internal/player"
	"github.com/jmylchreest/pitchplay/internal/tone"
)

var playOpts struct {
	seq    sequenceOpts
	strict bool
	quiet  bool
	format string
}

var playCmd = &cobra.Command{
	Use:   "play [notes...]",
	Short: "Play a note sequence",
	Long: `Play a note sequence, one tone per note.

Without notes or a source flag the default song from the config is played.

Examples:
  # Play three notes
  pitchplay play A4 A#4 B4

  # Play the bundled theme through the platform beeper
  pitchplay play --song theme --backend beep

  # Play notes from a file
  pitchplay play --file tune.yaml

  # Pipe notes in
  echo "C4 E4 G4 C5" | pitchplay play --stdin`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	addSequenceFlags(playCmd, &playOpts.seq)
	playCmd.Flags().BoolVar(&playOpts.strict, "strict", false,
		"Fail on notes the backend cannot play instead of skipping them")
	playCmd.Flags().BoolVarP(&playOpts.quiet, "quiet", "q", false,
		"Do not print the session summary")
	playCmd.Flags().StringVar(&playOpts.format, "format", "plain",
		"Session summary format (plain, json)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter, err := resolveAdapter(args, playOpts.seq, cfg.Songs, cfg.SongsDir())
	if err != nil {
		return err
	}

	seq, err := adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	session, err := playSequence(ctx, seq, playOpts.strict)
	if session != nil && !playOpts.quiet {
		if ferr := writeSession(cmd, session, playOpts.format); ferr != nil {
			logger.Warn("failed to write session summary", "error", ferr)
		}
	}
	if errors.Is(err, context.Canceled) {
		logger.Debug("playback interrupted")
		return nil
	}
	return err
}

// playSequence builds the configured emitter and plays seq through it.
func playSequence(ctx context.Context, seq model.Sequence, strict bool) (*model.Session, error) {
	tuning, err := getTuning()
	if err != nil {
		return nil, err
	}

	emitter, err := tone.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	p := player.New(tuning, emitter, player.Options{
		Duration: tone.NoteDuration(cfg),
		Strict:   strict || cfg.Beep.Strict,
	}, logger)

	logger.Debug("playing sequence",
		"name", seq.Name,
		"source", seq.Source,
		"notes", seq.Len(),
		"backend", emitter.Name())

	return p.Play(ctx, seq)
}

// writeSession prints the session summary in the requested format.
func writeSession(cmd *cobra.Command, s *model.Session, format string) error {
	w := cmd.OutOrStdout()
	if output.FormatType(format) == output.FormatJSON {
		return output.NewJSONFormatter(output.DefaultFormatterOptions()).FormatSession(w, s)
	}
	return output.FormatSession(w, s)
}
