// Package config loads the tool configuration from a YAML file, with
// sensible defaults when no file exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"openwith/internal/xdg"
)

// Config is the user-tunable behavior of the tool.
type Config struct {
	// Terminal is the emulator command used to wrap Terminal=true entries,
	// for example "alacritty". Empty means autodetect via the
	// x-scheme-handler/terminal association.
	Terminal string `yaml:"terminal"`
	// TermExecArgs are the arguments between the terminal command and the
	// wrapped command line.
	TermExecArgs []string `yaml:"term_exec_args"`
	// ExpandWildcards applies wildcard mutation patterns to every known
	// matching key instead of storing the pattern verbatim.
	ExpandWildcards bool `yaml:"expand_wildcards"`
	// AutoOpenSingle skips the picker when exactly one candidate resolves.
	AutoOpenSingle bool `yaml:"auto_open_single"`
	// IncludeActions expands desktop actions into the candidate list.
	IncludeActions bool `yaml:"include_actions"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TermExecArgs: []string{"-e"},
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome(), "openwith", "config.yaml")
}

// Load reads the configuration at path, or the default path when path is
// empty. A missing file at the default path is not an error; it yields
// the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Write serializes the configuration to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
