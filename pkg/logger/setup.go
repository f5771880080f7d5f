package logger

import (
	"io"
	"strings"
	"time"

	"github.com/raywall/book-library-toolkit/pkg/config"
	"github.com/rs/zerolog"
)

// Configure cria o logger de diagnóstico. Nível inválido ou vazio cai para
// info. Os logs vão para out (stderr no CLI), separados do relatório que vai
// para stdout. O nível é aplicado ao logger, não globalmente.
func Configure(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	switch {
	case cfg.Disabled:
		return zerolog.Nop()
	case cfg.Format == "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: cfg.NoColor}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}
