package extension

import (
	"log/slog"

	"github.com/reglet-dev/rvext/internal/abi"
	"github.com/reglet-dev/rvext/internal/config"
	"github.com/reglet-dev/rvext/internal/log"
)

// Load builds an Extension from the settings file named by config.Path.
// It never fails: configuration and log file problems are logged and the
// extension falls back to defaults.
func Load(memory abi.Memory, opts ...Option) *Extension {
	settings, cfgErr := config.Load(config.Path())

	var ext *Extension
	forward := func(function, data string) error {
		if ext == nil {
			return abi.ErrNoCallback
		}
		return ext.send(function, data)
	}

	logger, closer, logErr := log.New(settings.Log, forward)
	if logErr != nil {
		logger.Error("log file unavailable, using stderr", slog.Any("error", logErr))
	}
	if cfgErr != nil {
		logger.Error("invalid configuration, using defaults", slog.String("path", config.Path()), slog.Any("error", cfgErr))
	}

	ext, err := New(settings, memory, append([]Option{WithLogger(logger, closer)}, opts...)...)
	if err != nil {
		logger.Error("extra commands rejected, using built-ins only", slog.Any("error", err))
		ext, _ = New(settings, memory, WithLogger(logger, closer))
	}

	logger.Info("extension loaded", slog.String("version", settings.Identification()))
	return ext
}
