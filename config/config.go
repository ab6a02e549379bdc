package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config is the root configuration structure.
type Config struct {
	Identity IdentityConfig `json:"identity" toml:"identity"`
	Paths    PathsConfig    `json:"paths" toml:"paths"`
	Reader   ReaderConfig   `json:"reader" toml:"reader"`
	Rebase   RebaseConfig   `json:"rebase" toml:"rebase"`
	Report   ReportConfig   `json:"report" toml:"report"`
}

// IdentityConfig holds the author identity written into every rewritten commit.
type IdentityConfig struct {
	Name       string `json:"name" toml:"name"`
	Email      string `json:"email" toml:"email"`
	AllowEmpty bool   `json:"allowEmpty" toml:"allowEmpty"` // Accept a blank name or email
}

// PathsConfig holds artifact locations.
type PathsConfig struct {
	DataDir string `json:"dataDir" toml:"dataDir"` // Default: ".commit_data"
	Script  string `json:"script" toml:"script"`   // Default: "<dataDir>/rebase_todo.txt"
}

// ReaderConfig holds history traversal options.
type ReaderConfig struct {
	Backend string `json:"backend" toml:"backend"` // "gogit" or "cli"
	Order   string `json:"order" toml:"order"`     // "oldest" or "newest"
	Branch  string `json:"branch" toml:"branch"`   // Default: "HEAD"
}

// RebaseConfig holds options for driving git.
type RebaseConfig struct {
	GitBinary     string `json:"gitBinary" toml:"gitBinary"`
	TodoPattern   string `json:"todoPattern" toml:"todoPattern"` // doublestar pattern for the todo file
	RestoreEditor bool   `json:"restoreEditor" toml:"restoreEditor"`
}

// ReportConfig holds extraction report defaults.
type ReportConfig struct {
	Format       string   `json:"format" toml:"format"`
	AuthorFilter []string `json:"authorFilter" toml:"authorFilter"` // Glob patterns on author email
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir: ".commit_data",
		},
		Reader: ReaderConfig{
			Backend: "gogit",
			Order:   "oldest",
			Branch:  "HEAD",
		},
		Rebase: RebaseConfig{
			GitBinary:     "git",
			TodoPattern:   "**/git-rebase-todo",
			RestoreEditor: true,
		},
		Report: ReportConfig{
			Format:       "console",
			AuthorFilter: []string{},
		},
	}
}

// ScriptPath returns the configured script artifact path.
func (c *Config) ScriptPath() string {
	if c.Paths.Script != "" {
		return c.Paths.Script
	}
	return filepath.Join(c.Paths.DataDir, "rebase_todo.txt")
}

var configNames = []string{".reauthor.json", ".reauthor.toml"}

// LoadConfig loads configuration from a file, merging with defaults.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := append([]string{}, configNames...)
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			for _, name := range configNames {
				candidates = append(candidates, filepath.Join(home, name))
			}
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isTOML(path) {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
