package input

import (
	"context"
	"embed"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// EmbeddedSongs contains all bundled sequence files.
//
//go:embed songs/*.txt
var EmbeddedSongs embed.FS

// GetEmbeddedSong retrieves a bundled song by name.
// Returns the text and whether it was found.
func GetEmbeddedSong(name string) (string, bool) {
	data, err := EmbeddedSongs.ReadFile("songs/" + name + ".txt")
	if err != nil {
		return "", false
	}
	return string(data), true
}

// ListEmbeddedSongs returns names of all embedded songs.
func ListEmbeddedSongs() []string {
	var songs []string

	entries, err := fs.ReadDir(EmbeddedSongs, "songs")
	if err != nil {
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if ext := filepath.Ext(name); ext == ".txt" {
			songs = append(songs, strings.TrimSuffix(name, ext))
		}
	}
	return songs
}

// EmbeddedAdapter serves a bundled song.
type EmbeddedAdapter struct {
	song string
}

// NewEmbeddedAdapter creates an adapter for the named bundled song.
func NewEmbeddedAdapter(song string) *EmbeddedAdapter {
	return &EmbeddedAdapter{song: song}
}

// Name returns the adapter identifier.
func (a *EmbeddedAdapter) Name() string {
	return "embedded"
}

// Load returns the bundled song as a sequence.
func (a *EmbeddedAdapter) Load(_ context.Context) (model.Sequence, error) {
	text, ok := GetEmbeddedSong(a.song)
	if !ok {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "unknown song " + a.song,
			Err:     fs.ErrNotExist,
		}
	}

	tokens, err := parseText(text)
	if err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "failed to parse song " + a.song,
			Err:     err,
		}
	}

	return finish(a.Name(), model.Sequence{
		Name:   a.song,
		Source: a.Name(),
		Tokens: tokens,
	})
}
