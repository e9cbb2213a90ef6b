// Package shellconfig loads optional shell-runtime configuration: knobs
// the core leaves unconstrained, such as how much history to retain in
// memory and any extra directories to search for executables ahead of
// PATH.
package shellconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the shell's runtime configuration.
type Config struct {
	HistoryLimit int      `yaml:"history_limit"`
	ExtraPath    []string `yaml:"extra_path,omitempty"`
}

// DefaultHistoryLimit is used when a config file is absent or sets no
// explicit limit. A value of 0 means "unbounded".
const DefaultHistoryLimit = 0

// Default returns the configuration a shell starts with before any
// file or environment override is applied.
func Default() *Config {
	return &Config{
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Dir returns the posh configuration directory, ~/.posh.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".posh"), nil
}

// Path returns ~/.posh/config.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file if present, then applies environment
// overrides. A missing file is not an error — Default() is returned
// unmodified aside from env overrides.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		f, openErr := os.Open(path)
		if openErr == nil {
			defer f.Close()
			if decodeErr := yaml.NewDecoder(f).Decode(cfg); decodeErr != nil {
				return nil, fmt.Errorf("failed to parse config: %w", decodeErr)
			}
		} else if !os.IsNotExist(openErr) {
			return nil, openErr
		}
	}

	if limit := os.Getenv("POSH_HISTORY_LIMIT"); limit != "" {
		if n, convErr := parsePositiveInt(limit); convErr == nil {
			cfg.HistoryLimit = n
		}
	}

	return cfg, nil
}

// Save writes cfg to ~/.posh/config.yaml, creating the directory if
// necessary.
func Save(cfg *Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := Path()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value: %s", s)
	}
	return n, nil
}
