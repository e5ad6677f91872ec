package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/adapter/input"
	"github.com/jmylchreest/pitchplay/internal/model"
	"github.com/jmylchreest/pitchplay/internal/pitch"
	"github.com/jmylchreest/pitchplay/internal/tone"
)

var watchOpts struct {
	strict bool
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Replay a sequence file whenever it changes",
	Long: `Play a sequence file, then play it again each time it is saved.

Load and parse errors are logged and the watch continues, so a half-written
file does not end the session. Press Ctrl-C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOpts.strict, "strict", false,
		"Fail on notes the backend cannot play instead of skipping them")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return err
	}

	watcher, err := input.NewFileWatcher(path, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if err := watcher.Stop(); err != nil {
			logger.Warn("failed to stop watcher", "error", err)
		}
	}()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	adapter := input.NewFileAdapter(path)
	play := func() error {
		seq, err := adapter.Load(ctx)
		if err != nil {
			logger.Warn("failed to load notes", "file", path, "error", err)
			return nil
		}
		session, err := playSequence(ctx, seq, watchOpts.strict)
		if session != nil {
			if ferr := writeSession(cmd, session, "plain"); ferr != nil {
				logger.Warn("failed to write session summary", "error", ferr)
			}
		}
		return watchResult(err)
	}

	if err := play(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.Changes():
			logger.Info("replaying", "file", path)
			if err := play(); err != nil {
				return err
			}
		}
	}
}

// watchResult decides whether a playback error ends the watch. Bad notes
// are logged so the file can be fixed; backend failures are fatal.
func watchResult(err error) error {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return nil
	case errors.Is(err, model.ErrEmptySequence),
		errors.Is(err, tone.ErrUnsupportedFrequency),
		errors.As(err, new(*pitch.NoteError)):
		logger.Warn("playback stopped", "error", err)
		return nil
	default:
		return err
	}
}
