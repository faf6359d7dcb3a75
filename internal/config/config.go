// Copyright PDF Name Checker Contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Verbose bool `yaml:"verbose"`
		Debug   bool `yaml:"debug"`
		NoColor bool `yaml:"no_color"`
	} `yaml:"defaults"`

	// OCR engine and extraction settings
	OCR struct {
		// TesseractPath is the OCR engine executable. Empty means "tesseract"
		// resolved via PATH (default engine discovery).
		TesseractPath string `yaml:"tesseract_path"`
		// PdftoppmPath is the poppler page renderer executable. Empty means
		// "pdftoppm" resolved via PATH.
		PdftoppmPath string `yaml:"pdftoppm_path"`
		// Language is the Tesseract language code (e.g. "eng", "eng+deu")
		Language string `yaml:"language"`
		// Scale is the page render upscaling factor applied in each dimension
		// before OCR; 2.0 renders at 144 dpi
		Scale float64 `yaml:"scale"`
		// MinTextLength is the minimum trimmed length of embedded text that
		// counts as a successful digital extraction; below it OCR runs
		MinTextLength int `yaml:"min_text_length"`
		// MaxPages caps how many pages are extracted per document
		MaxPages int `yaml:"max_pages"`
	} `yaml:"ocr"`

	// Batch tool directories
	Batch struct {
		InputDir  string `yaml:"input_dir"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"batch"`
}

// LoadConfig loads configuration from the specified file path.
// An empty path returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	// Set default values
	config.OCR.Language = "eng"
	config.OCR.Scale = 2.0
	config.OCR.MinTextLength = 50
	config.OCR.MaxPages = 50
	config.Batch.InputDir = "pdf"
	config.Batch.OutputDir = "pdf_renamed"

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// ValidateConfig checks configuration values for consistency
func ValidateConfig(config *Config) error {
	if config.OCR.Scale <= 0 {
		return fmt.Errorf("ocr.scale must be positive, got %v", config.OCR.Scale)
	}
	if config.OCR.MinTextLength < 0 {
		return fmt.Errorf("ocr.min_text_length must not be negative, got %d", config.OCR.MinTextLength)
	}
	if config.OCR.MaxPages < 0 {
		return fmt.Errorf("ocr.max_pages must not be negative, got %d", config.OCR.MaxPages)
	}
	if config.Batch.InputDir == "" {
		return fmt.Errorf("batch.input_dir must not be empty")
	}
	if config.Batch.OutputDir == "" {
		return fmt.Errorf("batch.output_dir must not be empty")
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("pdf-name-checker.yaml") {
		return "pdf-name-checker.yaml"
	}

	// Check for project-specific dotfile in current directory
	if fileExists(".pdf-name-checker.yaml") {
		return ".pdf-name-checker.yaml"
	}
	if fileExists(".pdf-name-checker.yml") {
		return ".pdf-name-checker.yml"
	}

	// Check standard location in the user config directory
	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ".config", "pdf-name-checker", "config.yaml")
		if fileExists(candidate) {
			return candidate
		}
	}

	// No config file found
	return ""
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard
// locations when configFile is empty). If loading fails, it returns a default
// configuration. This is the shared helper used by all three CLI tools.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
