// Package main provides the CLI entrypoint for pitchplay.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/config"
	"github.com/jmylchreest/pitchplay/internal/pitch"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		backend    string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pitchplay",
	Short: "Play note sequences as tones",
	Long: `pitchplay converts note names such as A4 or C#5 into frequencies and
plays each one as a tone, one note at a time.

Tones are synthesized and written to the sound card (speaker, pulse) or
requested from the platform beeper (beep).`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.backend != "" {
			if !slices.Contains(config.ValidBackends(), globalOpts.backend) {
				return fmt.Errorf("invalid backend %q (valid: %v)", globalOpts.backend, config.ValidBackends())
			}
			cfg.Output.Backend = globalOpts.backend
		}

		logger.Debug("configuration loaded",
			"backend", cfg.Output.Backend,
			"a4", cfg.Tuning.A4,
			"songs_dir", cfg.SongsDir())
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/pitchplay/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.backend, "backend", "b", "",
		"Tone backend (speaker, pulse, beep; default from config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getTuning returns the configured tuning.
func getTuning() (pitch.Tuning, error) {
	return pitch.NewTuning(cfg.Tuning.A4)
}
