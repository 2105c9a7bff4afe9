// Package slogx builds [slog.Logger] values from configuration strings.
package slogx

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Nop returns a logger that discards everything, which is the default for library types that accept a logger.
func Nop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel interprets a case-insensitive level name: debug, info, warn (or warning), and error.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: '%s'", ErrUnknownLevel, level)
	}
}

func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnknownFormat, format)
	}
}

// New creates a logger that writes records at or above level to out in the given format.
//
// Passing a nil writer will panic.
func New(out io.Writer, level slog.Level, format Format) *slog.Logger {
	if out == nil {
		panic("nil log writer")
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}
