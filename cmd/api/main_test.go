package main

import (
	"log/slog"
	"testing"

	"finance-tracker/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewLogger_Format(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{Environment: "production"}}
	_, isJSON := newLogger(cfg).Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)

	cfg.Server.Environment = "development"
	_, isText := newLogger(cfg).Handler().(*slog.TextHandler)
	assert.True(t, isText)

	cfg.Logging.Format = "JSON"
	_, isJSON = newLogger(cfg).Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}
