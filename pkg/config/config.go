// Package config loads the optional odds.yml project manifest.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed contents of odds.yml. There is no module
// system in Odds, so the manifest is deliberately small: it names one
// entry file and a couple of checker toggles.
type Manifest struct {
	Path         string
	Entry        string
	Strict       bool
	EmitTypedAST bool
}

type manifestFile struct {
	Entry        string `yaml:"entry"`
	Strict       bool   `yaml:"strict"`
	EmitTypedAST bool   `yaml:"emitTypedAST"`
}

// DefaultName is the manifest filename the CLI looks for next to the
// directory it's invoked from.
const DefaultName = "odds.yml"

// Load parses odds.yml at path. A missing file is not an error: the
// CLI falls back to the single file named on the command line —
// manifest optional, direct file execution as the fallback.
func Load(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	if raw.Entry == "" {
		return nil, fmt.Errorf("config: %s: entry must be provided", absPath)
	}

	return &Manifest{
		Path:         absPath,
		Entry:        raw.Entry,
		Strict:       raw.Strict,
		EmitTypedAST: raw.EmitTypedAST,
	}, nil
}

// LoadFromDir looks for odds.yml in dir and loads it, returning (nil,
// nil) if it is absent.
func LoadFromDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, DefaultName))
}
