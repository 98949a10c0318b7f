package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// allowedExtensions lists the allowed config file extensions
var allowedExtensions = []string{".yaml", ".yml"}

// LoadFile loads configuration from a YAML file, then applies the
// environment overlay and validation
func LoadFile(path string) (*Config, error) {
	cleanPath, err := validateConfigPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	cfg.overlayEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateConfigPath ensures the config file path is usable
func validateConfigPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid config path: %w", err)
	}
	cleanPath := filepath.Clean(absPath)

	for _, ext := range allowedExtensions {
		if strings.HasSuffix(strings.ToLower(cleanPath), ext) {
			return cleanPath, nil
		}
	}
	return "", fmt.Errorf("config file must have .yaml or .yml extension")
}
