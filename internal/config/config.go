// Package config provides configuration loading for the lexicon CLI and
// server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug  bool         `yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	Build  BuildConfig  `yaml:"build"`
	Crawl  CrawlConfig  `yaml:"crawl"`
	Output OutputConfig `yaml:"output"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BuildConfig holds index-build settings.
type BuildConfig struct {
	Threads int `yaml:"threads"`
}

// CrawlConfig holds web-crawl settings.
type CrawlConfig struct {
	Seed  string `yaml:"seed"`
	Total int    `yaml:"total"`
}

// OutputConfig holds the output file paths for JSON emission.
type OutputConfig struct {
	CountsPath  string `yaml:"counts_path"`
	IndexPath   string `yaml:"index_path"`
	ResultsPath string `yaml:"results_path"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Output.CountsPath = expandPath(cfg.Output.CountsPath, configDir)
	cfg.Output.IndexPath = expandPath(cfg.Output.IndexPath, configDir)
	cfg.Output.ResultsPath = expandPath(cfg.Output.ResultsPath, configDir)

	return &cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// expandPath joins paths starting with "./" (and ".") onto configDir.
// Absolute paths and other relative paths are left as-is, the latter resolved
// later against the process's working directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	return path
}
