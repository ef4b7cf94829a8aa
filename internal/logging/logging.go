// Package logging configures the process-wide slog.Logger from the
// loaded configuration.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/globalindex/citycore/config"
)

// New builds a slog.Logger using cfg.Env.Log, choosing a JSON handler in
// production and a text handler for local/pretty output.
func New(cfg *config.Config) (*slog.Logger, error) {
	level, err := parseLevel(cfg.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Env.Log.Pretty {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts)), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
