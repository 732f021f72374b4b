package app

import (
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tempo-sh/tempo/config"
)

const envLogLevel = "TEMPO_LOG_LEVEL"

// newLogger returns a logger writing to the rotated tempo log file. The
// daemon and the attached UI both log here; nothing is written to the
// terminal.
func newLogger(cfg *config.Config) zerolog.Logger {
	writer := &lumberjack.Logger{
		Filename:   cfg.System.LogPath,
		MaxSize:    5,
		MaxBackups: 3,
		Compress:   true,
	}

	level := zerolog.InfoLevel

	if v := os.Getenv(envLogLevel); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
