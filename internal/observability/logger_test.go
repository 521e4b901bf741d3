package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/couchcryptid/office-market-explorer/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_LevelFromConfig(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	tests := []struct {
		level     string
		debug     bool
		info      bool
		warnLevel bool
	}{
		{level: "debug", debug: true, info: true, warnLevel: true},
		{level: "info", debug: false, info: true, warnLevel: true},
		{level: "WARN", debug: false, info: false, warnLevel: true},
		{level: "verbose", debug: false, info: true, warnLevel: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(&config.Config{LogLevel: tt.level, LogFormat: "json"})

			ctx := context.Background()
			assert.Equal(t, tt.debug, logger.Enabled(ctx, slog.LevelDebug))
			assert.Equal(t, tt.info, logger.Enabled(ctx, slog.LevelInfo))
			assert.Equal(t, tt.warnLevel, logger.Enabled(ctx, slog.LevelWarn))
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	text := NewLogger(&config.Config{LogLevel: "info", LogFormat: "TEXT"})
	assert.IsType(t, &slog.TextHandler{}, text.Handler())

	jsonLogger := NewLogger(&config.Config{LogLevel: "info", LogFormat: "json"})
	assert.IsType(t, &slog.JSONHandler{}, jsonLogger.Handler())
	assert.Same(t, jsonLogger, slog.Default())
}
