// Package config loads optional overrides for logsift's heuristics from a TOML file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Scanner holds overrides for one scanning command. Empty fields keep the command's defaults.
type Scanner struct {
	Suffixes  []string `toml:"suffixes"`
	Fragments []string `toml:"fragments"`
	Suppress  []string `toml:"suppress"`
	Encodings []string `toml:"encodings"`
}

// Config is the whole file. Each table maps to the command of the same name.
type Config struct {
	Text Scanner `toml:"text"`
	Grep Scanner `toml:"grep"`
	Lint Scanner `toml:"lint"`
}

// Load parses the file at path. An empty path means no config file and yields an empty Config.
// A named file must exist.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, nil
	}

	resolved, err := expandPath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved) //nolint:gosec // user-specified config file
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Text = cfg.Text.clean()
	cfg.Grep = cfg.Grep.clean()
	cfg.Lint = cfg.Lint.clean()

	return cfg, nil
}

// clean drops blank entries. A blank suffix or fragment would match every line.
func (s Scanner) clean() Scanner {
	return Scanner{
		Suffixes:  nonBlank(s.Suffixes),
		Fragments: nonBlank(s.Fragments),
		Suppress:  nonBlank(s.Suppress),
		Encodings: nonBlank(s.Encodings),
	}
}

func nonBlank(values []string) []string {
	var out []string

	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			out = append(out, value)
		}
	}

	return out
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}

		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}

	return filepath.Abs(trimmed)
}
