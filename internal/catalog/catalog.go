// Package catalog loads the daily challenge texts.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"studyquest/internal/engine"
)

// Challenge is one entry of a challenge file.
type Challenge struct {
	Text string `yaml:"text"`
}

// File models a challenge catalog:
//
//	challenges:
//	  - text: Read 20 pages
//	  - text: Explain a concept out loud
type File struct {
	Challenges []Challenge `yaml:"challenges"`
}

// Load returns the challenge texts from path, or the built-in list when
// path is empty.
func Load(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return append([]string(nil), engine.DefaultChallenges...), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read challenge file: %w", err)
	}
	texts, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("challenge file %s: %w", path, err)
	}
	return texts, nil
}

// Parse decodes a YAML catalog. Blank entries and duplicates are rejected.
func Parse(data []byte) ([]string, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(f.Challenges) == 0 {
		return nil, errors.New("no challenges defined")
	}

	seen := make(map[string]bool, len(f.Challenges))
	out := make([]string, 0, len(f.Challenges))
	for i, c := range f.Challenges {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			return nil, fmt.Errorf("challenge %d: text is required", i+1)
		}
		if seen[text] {
			return nil, fmt.Errorf("challenge %d: duplicate %q", i+1, text)
		}
		seen[text] = true
		out = append(out, text)
	}
	return out, nil
}
