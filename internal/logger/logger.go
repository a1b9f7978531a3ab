package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/darkahs/storefront/internal/config"
)

// New creates a JSON slog.Logger at the configured minimum level.
func New(cfg *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})
	return slog.New(handler)
}

// parseLevel maps the config string onto a slog level. Unknown values
// fall back to Info rather than failing startup.
func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
