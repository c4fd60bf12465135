package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the directory layout used by the CLI and the generator.
type Config struct {
	TemplateDir string `json:"templateDir"` // Where template JSON files live
	OutputDir   string `json:"outputDir"`   // Where generated presentations are written
	AssetsDir   string `json:"assetsDir"`   // Template assets (images)
	LogosDir    string `json:"logosDir"`    // Uploaded logos
	LogDir      string `json:"logDir"`      // Run logs
}

// Default returns the configuration rooted at the given base directory.
func Default(baseDir string) Config {
	return Config{
		TemplateDir: filepath.Join(baseDir, "templates"),
		OutputDir:   filepath.Join(baseDir, "output"),
		AssetsDir:   filepath.Join(baseDir, "assets"),
		LogosDir:    filepath.Join(baseDir, "assets", "logos"),
		LogDir:      filepath.Join(baseDir, "logs"),
	}
}

// Load reads a config file, filling missing fields from Default(baseDir).
// A missing file is not an error; defaults are returned.
func Load(path, baseDir string) (Config, error) {
	cfg := Default(baseDir)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	def := Default(baseDir)
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = def.TemplateDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.AssetsDir == "" {
		cfg.AssetsDir = def.AssetsDir
	}
	if cfg.LogosDir == "" {
		cfg.LogosDir = def.LogosDir
	}
	if cfg.LogDir == "" {
		cfg.LogDir = def.LogDir
	}
	return cfg, nil
}

// Save writes the config as indented JSON, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// EnsureDirs creates every configured directory.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.TemplateDir, c.OutputDir, c.AssetsDir, c.LogosDir, c.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
