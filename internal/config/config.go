// Package config manages mergebench configuration and the .mergebench
// directory structure. It handles loading, saving, and initializing the
// evaluation configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	MergebenchDir = ".mergebench"
	ConfigFile    = "config"
	DatabaseFile  = "results.db"
)

// Config represents the mergebench configuration
type Config struct {
	// ToolsDir holds the merge tool wrapper scripts (<tool>.sh).
	ToolsDir string `toml:"tools_dir"`
	// WorkspacesDir is the scratch root for disposable repository checkouts.
	WorkspacesDir string `toml:"workspaces_dir"`
	// OutputDir receives diff artifacts and aggregate report files.
	OutputDir string `toml:"output_dir"`
	// CloneURLPrefix is prepended to repository slugs to form clone URLs.
	CloneURLPrefix string `toml:"clone_url_prefix"`

	path string // path to .mergebench directory
}

// FindRoot finds the .mergebench directory by walking up from the current
// directory
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		benchPath := filepath.Join(dir, MergebenchDir)
		if info, err := os.Stat(benchPath); err == nil && info.IsDir() {
			return benchPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not a mergebench workspace (or any parent up to root)")
		}
		dir = parent
	}
}

// Load loads the configuration from the .mergebench directory
func Load() (*Config, error) {
	benchPath, err := FindRoot()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(benchPath, ConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.path = benchPath
	return &cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configPath := filepath.Join(c.path, ConfigFile)
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// Path returns the path to the .mergebench directory
func (c *Config) Path() string {
	return c.path
}

// DatabasePath returns the path to the results database
func (c *Config) DatabasePath() string {
	return filepath.Join(c.path, DatabaseFile)
}

// Initialize creates a new .mergebench directory with initial configuration
func Initialize(toolsDir string) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	benchPath := filepath.Join(cwd, MergebenchDir)

	// Check if already initialized
	if _, err := os.Stat(benchPath); err == nil {
		return nil, fmt.Errorf("mergebench workspace already exists")
	}

	if err := os.MkdirAll(benchPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .mergebench directory: %w", err)
	}

	cfg := &Config{
		ToolsDir:       toolsDir,
		WorkspacesDir:  filepath.Join(cwd, "repos"),
		OutputDir:      filepath.Join(cwd, "results"),
		CloneURLPrefix: "https://github.com/",
		path:           benchPath,
	}

	if err := cfg.Save(); err != nil {
		// Cleanup on failure
		os.RemoveAll(benchPath)
		return nil, err
	}

	return cfg, nil
}
