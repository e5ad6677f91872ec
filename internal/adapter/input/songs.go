package input

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// songPattern matches sequence files below a songs directory.
const songPattern = "**/*.{txt,yaml,yml,toml}"

// Song describes a playable sequence.
type Song struct {
	Name   string `json:"name" yaml:"name"`
	Source string `json:"source" yaml:"source"` // "embedded" or the file path
}

// ListSongs returns the bundled songs followed by sequence files under dir.
// A missing dir is not an error. Files shadow bundled songs of the same name.
func ListSongs(dir string) ([]Song, error) {
	files, err := findSongFiles(dir)
	if err != nil {
		return nil, err
	}

	var songs []Song
	for _, name := range ListEmbeddedSongs() {
		if _, shadowed := files[name]; shadowed {
			continue
		}
		songs = append(songs, Song{Name: name, Source: "embedded"})
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		songs = append(songs, Song{Name: name, Source: files[name]})
	}

	return songs, nil
}

// FindSong returns an adapter for the named song. Files under dir take
// precedence over bundled songs.
func FindSong(name, dir string) (InputAdapter, error) {
	files, err := findSongFiles(dir)
	if err != nil {
		return nil, err
	}
	if path, ok := files[name]; ok {
		return NewFileAdapter(path), nil
	}
	if _, ok := GetEmbeddedSong(name); ok {
		return NewEmbeddedAdapter(name), nil
	}
	return nil, &AdapterError{
		Source:  "song",
		Message: "unknown song " + name,
		Err:     fs.ErrNotExist,
	}
}

// findSongFiles maps song names (relative path without extension) to file paths.
func findSongFiles(dir string) (map[string]string, error) {
	files := make(map[string]string)
	if dir == "" {
		return files, nil
	}

	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return files, nil
		}
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(dir), songPattern)
	if err != nil {
		return nil, &AdapterError{
			Source:  "song",
			Message: "failed to search " + dir,
			Err:     err,
		}
	}

	for _, match := range matches {
		name := strings.TrimSuffix(match, filepath.Ext(match))
		if _, seen := files[name]; seen {
			continue
		}
		files[name] = filepath.Join(dir, filepath.FromSlash(match))
	}
	return files, nil
}
