package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSize = 10
	maxBack = 5
	maxAge  = 30
)

// NewLogger builds the service logger: human-readable lines on stdout and
// JSON lines in a rotated file at filePath.
func NewLogger(filePath, serviceName string, level zerolog.Level) zerolog.Logger {
	return newLogger(os.Stdout, rotator(filePath), serviceName, level)
}

func newLogger(console, file io.Writer, serviceName string, level zerolog.Level) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(consoleWriter, file)).With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger().
		Level(level)

	logger.Debug().
		Str("service", serviceName).
		Msg("logger initialized")

	return logger
}

func rotator(filePath string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize, // megabytes
		MaxBackups: maxBack,
		MaxAge:     maxAge, // days
		Compress:   true,
	}
}
