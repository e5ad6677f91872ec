package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/adapter/output"
)

var freqOpts struct {
	seq      sequenceOpts
	format   string
	template string
	noHeader bool
}

var freqCmd = &cobra.Command{
	Use:   "freq [notes...]",
	Short: "Print note frequencies without playing",
	Long: `Resolve notes to frequencies and print them without playing anything.

Examples:
  # Table of frequencies
  pitchplay freq A4 C5 E5

  # One frequency per line
  pitchplay freq --song scale --format hz

  # Custom template
  pitchplay freq A4 --template '{{.Note.Token}} {{si .Note.Hz}}'`,
	RunE: runFreq,
}

func init() {
	rootCmd.AddCommand(freqCmd)

	addSequenceFlags(freqCmd, &freqOpts.seq)
	freqCmd.Flags().StringVar(&freqOpts.format, "format", "plain",
		"Output format (plain, json, yaml, hz)")
	freqCmd.Flags().StringVar(&freqOpts.template, "template", "",
		"Custom Go template for plain output")
	freqCmd.Flags().BoolVar(&freqOpts.noHeader, "no-header", false,
		"Omit the column headings in plain output")
}

func runFreq(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	format := output.FormatType(freqOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("invalid format %q (valid: %v)", freqOpts.format, output.ValidFormats())
	}

	adapter, err := resolveAdapter(args, freqOpts.seq, cfg.Songs, cfg.SongsDir())
	if err != nil {
		return err
	}

	seq, err := adapter.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	tuning, err := getTuning()
	if err != nil {
		return err
	}

	// Print what resolved before reporting the first bad token
	notes, parseErr := tuning.ParseAll(seq.Tokens)

	opts := output.DefaultFormatterOptions()
	opts.Template = freqOpts.template
	opts.ShowHeader = !freqOpts.noHeader

	if err := output.NewFormatter(format, opts).Format(cmd.OutOrStdout(), notes); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if parseErr != nil {
		return fmt.Errorf("note %d: %w", len(notes)+1, parseErr)
	}
	return nil
}
