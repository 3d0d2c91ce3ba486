// Package logger provides a preconfigured zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// InitLog returns a logger writing timestamped JSON records to stderr.
func InitLog() *zerolog.Logger {
	return InitLogTo(os.Stderr)
}

// InitLogTo returns a logger writing timestamped JSON records to w.
func InitLogTo(w io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	Logger := zerolog.New(w).With().Timestamp().Logger()
	return &Logger
}
