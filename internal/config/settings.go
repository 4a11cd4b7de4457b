// Package config loads and validates the extension settings.
package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// EnvPath names the environment variable that points at the settings file.
const EnvPath = "RVEXT_CONFIG"

// DefaultPath is used when EnvPath is unset. It is resolved against the Host
// process working directory.
const DefaultPath = "rvext.yaml"

// validate is a package-level singleton; creating validators is expensive.
var validate = validator.New()

// Settings configures the extension.
type Settings struct {
	Name               string      `yaml:"name" json:"name" validate:"required,printascii,max=64" jsonschema:"description=Extension name sent as the first callback argument,default=Test Extension"`
	Version            string      `yaml:"version" json:"version" validate:"required,printascii,max=32" jsonschema:"description=Version reported by RVExtensionVersion,default=1.00"`
	Log                LogSettings `yaml:"log" json:"log"`
	AnnounceOnRegister bool        `yaml:"announce_on_register" json:"announce_on_register" jsonschema:"description=Invoke the callback once when the Host registers it,default=true"`
}

// LogSettings configures extension logging.
type LogSettings struct {
	Level         string `yaml:"level" json:"level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	File          string `yaml:"file" json:"file,omitempty" jsonschema:"description=Log file path; stderr when empty"`
	ForwardToHost bool   `yaml:"forward_to_host" json:"forward_to_host" jsonschema:"description=Also push log records through the Host callback"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Name:               "Test Extension",
		Version:            "1.00",
		AnnounceOnRegister: true,
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Identification is the string returned to the Host by RVExtensionVersion.
func (s Settings) Identification() string {
	return fmt.Sprintf("%s v.%s", s.Name, s.Version)
}

// Validate checks the settings against their struct tags.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// SlogLevel maps Log.Level to a slog level. Unknown values map to info.
func (l LogSettings) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
