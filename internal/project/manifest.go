// Package project loads the elx.toml manifest and resolves the
// effective build configuration from defaults, environment, manifest
// and flags, in that order of increasing precedence.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the root walk looks for.
const ManifestName = "elx.toml"

// Manifest mirrors elx.toml. Absence of a key is meaningful (the
// default survives), so loading keeps the toml.MetaData alongside.
type Manifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Build struct {
		Jobs     int    `toml:"jobs"`
		Internal bool   `toml:"internal"`
		Cache    bool   `toml:"cache"`
		Color    string `toml:"color"`
	} `toml:"build"`
	Repl struct {
		History string `toml:"history"`
	} `toml:"repl"`
}

// LoadManifest parses one elx.toml.
func LoadManifest(path string) (*Manifest, toml.MetaData, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		return nil, meta, fmt.Errorf("%s: unknown key %q", path, keys[0].String())
	}
	if meta.IsDefined("build", "color") {
		if err := ValidateColorMode(m.Build.Color); err != nil {
			return nil, meta, fmt.Errorf("%s: %w", path, err)
		}
	}
	if meta.IsDefined("build", "jobs") && m.Build.Jobs < 1 {
		return nil, meta, fmt.Errorf("%s: [build].jobs must be at least 1", path)
	}
	return &m, meta, nil
}

// FindManifest walks up from startDir to locate elx.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// ValidateColorMode checks a --color / [build].color value.
func ValidateColorMode(mode string) error {
	switch strings.TrimSpace(mode) {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("invalid color mode %q: expected auto, always or never", mode)
	}
}
