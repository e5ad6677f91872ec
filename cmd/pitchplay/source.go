package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/pitchplay/internal/adapter/input"
	"github.com/jmylchreest/pitchplay/internal/config"
)

// sequenceOpts selects where a command reads its notes from.
type sequenceOpts struct {
	file  string
	song  string
	stdin bool
}

var errTooManySources = errors.New("only one of notes, --file, --song or --stdin may be given")

// addSequenceFlags registers the sequence source flags on cmd.
func addSequenceFlags(cmd *cobra.Command, opts *sequenceOpts) {
	cmd.Flags().StringVarP(&opts.file, "file", "f", "",
		"Read notes from a text, YAML or TOML file")
	cmd.Flags().StringVarP(&opts.song, "song", "s", "",
		"Play a bundled or saved song by name (see 'pitchplay songs')")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false,
		"Read notes from stdin")
}

// resolveAdapter picks the input adapter for the given arguments and flags.
// With no source at all the configured default song is used.
func resolveAdapter(args []string, opts sequenceOpts, songs config.SongsConfig, songsDir string) (input.InputAdapter, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if opts.file != "" {
		sources++
	}
	if opts.song != "" {
		sources++
	}
	if opts.stdin {
		sources++
	}
	if sources > 1 {
		return nil, errTooManySources
	}

	switch {
	case len(args) > 0:
		return input.NewArgsAdapter(args), nil
	case opts.file != "":
		return input.NewFileAdapter(opts.file), nil
	case opts.stdin:
		return input.NewStdinAdapter(), nil
	case opts.song != "":
		return input.FindSong(opts.song, songsDir)
	default:
		return input.FindSong(songs.Default, songsDir)
	}
}
