package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pitchplay/internal/adapter/input"
)

var songsOpts struct {
	format string
}

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List available songs",
	Long: `List the bundled songs and any sequence files found under the songs
directory (default: ~/.local/share/pitchplay/songs).

Files are matched recursively by extension (.txt, .yaml, .yml, .toml) and
named by their path relative to the songs directory. A file with the same
name as a bundled song replaces it.`,
	RunE: runSongs,
}

func init() {
	rootCmd.AddCommand(songsCmd)

	songsCmd.Flags().StringVar(&songsOpts.format, "format", "plain",
		"Output format (plain, json, yaml)")
}

func runSongs(cmd *cobra.Command, args []string) error {
	songs, err := input.ListSongs(cfg.SongsDir())
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	w := cmd.OutOrStdout()

	switch songsOpts.format {
	case "json":
		if songs == nil {
			songs = []input.Song{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(songs)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(songs); err != nil {
			return err
		}
		return enc.Close()

	case "plain":
		width := 0
		for _, s := range songs {
			width = max(width, len(s.Name))
		}
		for _, s := range songs {
			marker := " "
			if s.Name == cfg.Songs.Default {
				marker = "*"
			}
			if _, err := fmt.Fprintf(w, "%s %-*s  %s\n", marker, width, s.Name, s.Source); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("invalid format %q (valid: plain, json, yaml)", songsOpts.format)
	}
}
