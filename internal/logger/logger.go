package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Log levels
const (
	LevelDebug = log.LevelDebug
	LevelInfo  = log.LevelInfo
)

// Logger wraps the go-ethereum structured logger
type Logger struct {
	log.Logger
}

// New creates a new logger writing to stdout, colored when stdout is a terminal
func New(level slog.Level) *Logger {
	color := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return &Logger{
		Logger: log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stdout, level, color)),
	}
}

// NewWriter creates a new logger that writes uncolored output to the provided writer
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: log.NewLogger(log.NewTerminalHandlerWithLevel(w, level, false)),
	}
}

// Discard returns a logger that drops every record
func Discard() *Logger {
	return &Logger{
		Logger: log.NewLogger(log.DiscardHandler()),
	}
}
