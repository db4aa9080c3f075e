// Package config loads leek.toml, searching upward from a start directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const FileName = "leek.toml"

type Config struct {
	Parser    ParserConfig    `toml:"parser"`
	Output    OutputConfig    `toml:"output"`
	Workspace WorkspaceConfig `toml:"workspace"`
}

type ParserConfig struct {
	MaxDepth int `toml:"max_depth"` // 0 selects the parser default
}

type OutputConfig struct {
	Format    string `toml:"format"` // tree, json or text
	Positions bool   `toml:"positions"`
}

type WorkspaceConfig struct {
	Extensions   []string `toml:"extensions"`
	PollInterval Duration `toml:"poll_interval"`
}

// Duration decodes TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "tree",
		},
		Workspace: WorkspaceConfig{
			Extensions:   []string{".leek", ".ls"},
			PollInterval: Duration{time.Second},
		},
	}
}

// FindAndLoad looks for leek.toml in startDir and its parents. Without one
// it returns the defaults and an empty path.
func FindAndLoad(startDir string) (*Config, string, error) {
	configPath := FindConfigFile(startDir)
	if configPath == "" {
		return DefaultConfig(), "", nil
	}

	config, err := Load(configPath)
	if err != nil {
		return nil, "", err
	}

	return config, configPath, nil
}

func FindConfigFile(startDir string) string {
	dir := startDir

	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load decodes path over the defaults, so omitted keys keep their default
// values.
func Load(path string) (*Config, error) {
	config := DefaultConfig()
	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load %s: unknown key %s", path, undecoded[0])
	}

	switch config.Output.Format {
	case "tree", "json", "text":
	default:
		return nil, fmt.Errorf("load %s: unknown output format %q", path, config.Output.Format)
	}
	if config.Parser.MaxDepth < 0 {
		return nil, fmt.Errorf("load %s: max_depth must not be negative", path)
	}
	if len(config.Workspace.Extensions) == 0 {
		config.Workspace.Extensions = DefaultConfig().Workspace.Extensions
	}
	if config.Workspace.PollInterval.Duration <= 0 {
		config.Workspace.PollInterval = DefaultConfig().Workspace.PollInterval
	}

	return config, nil
}

// HasExtension reports whether path names a LeekScript source file.
func (c *Config) HasExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range c.Workspace.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}
