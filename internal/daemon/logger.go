package daemon

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for the daemon. Without a log file it writes
// console-formatted lines to stdout; with one it appends JSON records.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// NewLogger creates a new logger
func NewLogger(logFile, logLevel string) (*Logger, error) {
	level := zerolog.InfoLevel
	if logLevel != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(logLevel))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		level = parsed
	}

	var (
		writer io.Writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		file   *os.File
	)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		file = f
		writer = f
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", "appsweep-daemon").
		Logger()

	return &Logger{Logger: logger, file: file}, nil
}

// Close closes the log file if one is open
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
