package input

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/pitchplay/internal/model"
)

// sequenceDoc is the structured sequence file format.
// Notes may be a single string or a list of strings.
type sequenceDoc struct {
	Name  string `yaml:"name" toml:"name"`
	Notes any    `yaml:"notes" toml:"notes"`
}

// FileAdapter reads a sequence file.
// Supports plain text (.txt or no extension), YAML (.yaml, .yml) and TOML (.toml).
type FileAdapter struct {
	path string
}

// NewFileAdapter creates a new FileAdapter for path.
func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Path returns the file path.
func (a *FileAdapter) Path() string {
	return a.path
}

// Load reads and parses the sequence file.
func (a *FileAdapter) Load(ctx context.Context) (model.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return model.Sequence{}, err
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "failed to read sequence file",
			Err:     err,
		}
	}

	seq, err := parseSequence(a.path, data)
	if err != nil {
		return model.Sequence{}, &AdapterError{
			Source:  a.Name(),
			Message: "failed to parse " + a.path,
			Err:     err,
		}
	}
	seq.Source = a.path
	return finish(a.Name(), seq)
}

// parseSequence decodes data according to the file extension of path.
func parseSequence(path string, data []byte) (model.Sequence, error) {
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	var doc sequenceDoc
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return model.Sequence{}, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return model.Sequence{}, err
		}
	default:
		tokens, err := parseText(string(data))
		if err != nil {
			return model.Sequence{}, err
		}
		return model.Sequence{Name: name, Tokens: tokens}, nil
	}

	tokens, err := docTokens(doc.Notes)
	if err != nil {
		return model.Sequence{}, err
	}
	if doc.Name != "" {
		name = doc.Name
	}
	return model.Sequence{Name: name, Tokens: tokens}, nil
}

// docTokens flattens the notes field of a sequence document.
func docTokens(notes any) ([]string, error) {
	switch v := notes.(type) {
	case nil:
		return nil, nil
	case string:
		return parseText(v)
	case []any:
		var tokens []string
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("notes[%d]: expected string, got %T", i, item)
			}
			tokens = append(tokens, model.Tokenize(s)...)
		}
		return tokens, nil
	default:
		return nil, fmt.Errorf("notes: expected string or list, got %T", notes)
	}
}
