package project

import (
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
)

// Config is the effective build configuration after all layers apply.
type Config struct {
	// Name and Version come from [package]; both may be empty when
	// compiling loose files outside a project.
	Name    string
	Version string

	// Jobs bounds the concurrent scheduled-module workers.
	Jobs int
	// Internal switches bootstrap mode: documentation attributes are
	// dropped during lowering.
	Internal bool
	// Cache enables the lowered-tree disk cache.
	Cache bool
	// Color is auto, always or never.
	Color string
	// HistoryFile is the repl history location, ~ meaning unset uses
	// the default under the user home.
	HistoryFile string
}

// FromEnv builds the base configuration: compiled-in defaults overlaid
// with the ELX_* environment, NO_COLOR honored per convention.
func FromEnv() Config {
	c := Config{
		Jobs:     env.Int("ELX_JOBS", runtime.NumCPU()),
		Internal: env.Bool("ELX_INTERNAL"),
		Cache:    true,
		Color:    "auto",
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	if env.Has("NO_COLOR") {
		c.Color = "never"
	}
	return c
}

// Apply overlays manifest values onto the configuration. Only keys the
// manifest actually defines override; zero values written explicitly
// count as defined.
func (c *Config) Apply(m *Manifest, meta toml.MetaData) {
	if m == nil {
		return
	}
	if meta.IsDefined("package", "name") {
		c.Name = m.Package.Name
	}
	if meta.IsDefined("package", "version") {
		c.Version = m.Package.Version
	}
	if meta.IsDefined("build", "jobs") {
		c.Jobs = m.Build.Jobs
	}
	if meta.IsDefined("build", "internal") {
		c.Internal = m.Build.Internal
	}
	if meta.IsDefined("build", "cache") {
		c.Cache = m.Build.Cache
	}
	if meta.IsDefined("build", "color") {
		c.Color = m.Build.Color
	}
	if meta.IsDefined("repl", "history") {
		c.HistoryFile = m.Repl.History
	}
}

// Load resolves the configuration for a compile starting at startDir:
// environment base, then the nearest manifest if one exists.
func Load(startDir string) (Config, string, error) {
	c := FromEnv()
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return c, "", err
	}
	if !ok {
		return c, "", nil
	}
	m, meta, err := LoadManifest(path)
	if err != nil {
		return c, path, err
	}
	c.Apply(m, meta)
	return c, path, nil
}
