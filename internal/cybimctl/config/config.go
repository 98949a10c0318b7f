// Package config provides configuration management for the CYBIM CLI
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	// CurrentContext is the name of the active context
	CurrentContext string `mapstructure:"current-context"`
	// Contexts holds the available device contexts
	Contexts map[string]*Context `mapstructure:"contexts"`
}

// Context represents a signage device the CLI can talk to
type Context struct {
	// Name is the context identifier
	Name string `mapstructure:"name"`
	// Server is the device's control API URL
	Server string `mapstructure:"server"`
}

// defaultConfigPath returns the default config file path
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cybimctl/config.yaml"
	}
	return filepath.Join(home, ".cybimctl/config.yaml")
}

// Load reads the CLI configuration from disk, creating a default file
// when none exists
func Load() (*Config, error) {
	configPath := os.Getenv("CYBIMCTL_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	viper.SetDefault("current-context", "")
	viper.SetDefault("contexts", map[string]*Context{})

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			configDir := filepath.Dir(configPath)
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
			if err := viper.SafeWriteConfig(); err != nil {
				return nil, fmt.Errorf("error writing default config: %w", err)
			}
		} else {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to disk
func Save(config *Config) error {
	viper.Set("current-context", config.CurrentContext)
	viper.Set("contexts", config.Contexts)

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

// GetCurrentContext returns the active context configuration
func (c *Config) GetCurrentContext() (*Context, error) {
	if c.CurrentContext == "" {
		return nil, fmt.Errorf("no current context set")
	}

	ctx, ok := c.Contexts[c.CurrentContext]
	if !ok {
		return nil, fmt.Errorf("current context %q not found", c.CurrentContext)
	}
	return ctx, nil
}

// AddContext adds or updates a context in the configuration
func (c *Config) AddContext(name string, context *Context) {
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	context.Name = name
	c.Contexts[name] = context
}

// SetCurrentContext sets the active context
func (c *Config) SetCurrentContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	c.CurrentContext = name
	return nil
}

// RemoveContext removes a context from the configuration
func (c *Config) RemoveContext(name string) error {
	if _, ok := c.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(c.Contexts, name)

	if c.CurrentContext == name {
		c.CurrentContext = ""
	}
	return nil
}
