package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Run("Default Level Info", func(t *testing.T) {
		logger := Configure(config.LoggingConf{}, &bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Invalid Level Falls Back", func(t *testing.T) {
		logger := Configure(config.LoggingConf{Level: "verbose"}, &bytes.Buffer{})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		logger := Configure(config.LoggingConf{Level: "DEBUG"}, &bytes.Buffer{})
		assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
	})

	t.Run("JSON Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Level: "info", Format: "json"}, &buf)
		logger.Info().Str("container", "Books").Msg("cleanup started")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Books", entry["container"])
		assert.Equal(t, "cleanup started", entry["message"])
		assert.Contains(t, entry, "time")
	})

	t.Run("Level Filters Debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Level: "warn", Format: "json"}, &buf)
		logger.Info().Msg("ignored")
		assert.Zero(t, buf.Len())
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := Configure(config.LoggingConf{Disabled: true}, &buf)
		logger.Error().Msg("teste")
		assert.Zero(t, buf.Len())
	})
}
