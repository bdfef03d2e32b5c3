// Package config loads concordcat's configuration from an optional YAML
// file, with command-line flags taking precedence over anything it sets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every setting concordcat needs to open a panel connection.
type Config struct {
	Device   string `yaml:"device"`
	Baud     int    `yaml:"baud"`
	LogLevel string `yaml:"logLevel"`
}

// Default returns the baseline configuration, overridden by a YAML file
// and then by flags.
func Default() Config {
	return Config{
		Device:   "/dev/ttyUSB0",
		Baud:     9600,
		LogLevel: "info",
	}
}

// LoadFile reads and merges a YAML file over cfg. A missing file is not an
// error, since the file is optional and flags alone may be sufficient.
func LoadFile(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
