package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads settings from the YAML file at path. Fields missing from the
// file keep their defaults. A missing file is not an error.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := Parse(data, &settings); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return settings, nil
}

// Parse unmarshals YAML onto settings and validates the result.
func Parse(data []byte, settings *Settings) error {
	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return settings.Validate()
}

// Path returns the settings file location: $RVEXT_CONFIG, else DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}
