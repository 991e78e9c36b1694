package grammar

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed minutes.yaml
var minutesYAML []byte

// file is the on-disk grammar layout
type file struct {
	Order    []string          `yaml:"order"`
	Patterns map[string]string `yaml:"patterns"`
}

// Parse reads a YAML grammar with an order list and a patterns map
// unknown top-level keys are rejected so a typo cannot silently drop patterns
func Parse(data []byte) (Source, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Source{}, fmt.Errorf("%w: empty document", ErrInvalidGrammar)
		}
		return Source{}, fmt.Errorf("grammar: parse yaml: %w", err)
	}
	if len(f.Patterns) == 0 {
		return Source{}, fmt.Errorf("%w: no patterns", ErrInvalidGrammar)
	}
	return Source{Patterns: f.Patterns, Order: f.Order}, nil
}

// LoadFile parses and compiles a grammar file from disk
func LoadFile(path string, opts ...Option) (*Compiled, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grammar: read %s: %w", path, err)
	}
	src, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Compile(src, opts...)
}

// MinutesSource returns the embedded minutes grammar uncompiled
func MinutesSource() (Source, error) { return Parse(minutesYAML) }

// Minutes compiles the embedded minutes grammar
func Minutes(opts ...Option) (*Compiled, error) {
	src, err := MinutesSource()
	if err != nil {
		return nil, err
	}
	return Compile(src, opts...)
}

// MustMinutes is Minutes for process start; a broken grammar must never be served
func MustMinutes() *Compiled {
	c, err := Minutes()
	if err != nil {
		panic(err)
	}
	return c
}
