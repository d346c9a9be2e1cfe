package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger
type Logger struct {
	zerolog.Logger
}

// New creates the service logger. Development gets readable console lines at debug
// level, everything else JSON at info.
func New(serviceName string, environment string) *Logger {
	if environment == "development" {
		console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return newLogger(console, serviceName, zerolog.DebugLevel)
	}
	return newLogger(os.Stdout, serviceName, zerolog.InfoLevel)
}

func newLogger(w io.Writer, serviceName string, level zerolog.Level) *Logger {
	return &Logger{
		Logger: zerolog.New(w).
			Level(level).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger(),
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithRequestID scopes the logger to one HTTP request.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("request_id", requestID).Logger()}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With().Str("component", component).Logger()}
}
