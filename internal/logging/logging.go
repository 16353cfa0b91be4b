package logging

import (
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/taskmind/go-task-client/internal/config"
)

// New builds the client logger. Command output goes to the terminal; the
// structured log goes to a rotating file so it never interleaves with it.
func New(cfg config.LogConfig) zerolog.Logger {
	writer := &lumberjack.Logger{
		Filename:   cfg.GetLogFile(),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
