package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/sigap/sigap/internal/config/data"
)

// Config is the root configuration for the application.
type Config struct {
	Sigap *Sigap `yaml:"sigap"`
	mx    sync.RWMutex
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Sigap: NewSigap(),
	}
}

// Load loads the configuration from the given path.
// If the file doesn't exist and force is false, the current config is kept.
func (c *Config) Load(path string, force bool) error {
	c.mx.Lock()
	defer c.mx.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !force {
			return nil
		}
		return fmt.Errorf("config file does not exist: %s", path)
	}

	if err := data.LoadYAML(path, c); err != nil {
		return fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	if c.Sigap == nil {
		c.Sigap = NewSigap()
	}
	c.Sigap.Validate()

	return nil
}

// Save saves the configuration to the configured path.
// If force is false, only saves if the file already exists.
func (c *Config) Save(force bool) error {
	c.mx.RLock()
	defer c.mx.RUnlock()

	path := AppConfigFile
	if path == "" {
		return fmt.Errorf("no config file path configured")
	}

	_, err := os.Stat(path)
	fileExists := err == nil

	if !force && !fileExists {
		return nil
	}

	if err := data.SaveYAML(path, c); err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}

	return nil
}
