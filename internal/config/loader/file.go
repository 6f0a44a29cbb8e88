package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// TOMLLoader reads one TOML file.
type TOMLLoader struct{ path string }

// YAMLLoader reads one YAML file.
type YAMLLoader struct{ path string }

func NewTOMLLoader(path string) *TOMLLoader { return &TOMLLoader{path} }

func NewYAMLLoader(path string) *YAMLLoader { return &YAMLLoader{path} }

func (l *TOMLLoader) Load() (map[string]any, error) { return readFile(l.path, ParseTOML) }

func (l *YAMLLoader) Load() (map[string]any, error) { return readFile(l.path, ParseYAML) }

// readFile parses path with parse. A missing file yields a nil map.
func readFile(path string, parse func(string, []byte) (map[string]any, error)) (map[string]any, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return parse(path, data)
}

// ParseTOML decodes TOML. source names the input in a *ParseError, which
// carries the line of the first syntax error.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	err := toml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, _ = de.Position()
	}
	return nil, pe
}

// ParseYAML decodes YAML. source names the input in a *ParseError.
func ParseYAML(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return m, nil
}
