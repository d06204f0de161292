// Package logger предоставляет общий интерфейс логирования сервиса
// и две реализации: JSON через log/slog и консольную через zerolog.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger — минимальный интерфейс логгера, который принимают все слои приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// SlogLogger пишет структурированные JSON-логи через log/slog.
type SlogLogger struct {
	l *slog.Logger
}

// NewSlogLogger создаёт логгер уровня INFO, пишущий в stdout.
func NewSlogLogger() *SlogLogger {
	return NewSlogLoggerWithWriter(os.Stdout, "info")
}

func NewSlogLoggerWithWriter(w io.Writer, level string) *SlogLogger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseSlogLevel(level)})
	return &SlogLogger{l: slog.New(h)}
}

func (s *SlogLogger) Debugf(format string, args ...any) {
	s.l.Debug(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Infof(format string, args ...any) {
	s.l.Info(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Warnf(format string, args ...any) {
	s.l.Warn(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Errorf(err error, format string, args ...any) {
	s.l.LogAttrs(context.Background(), slog.LevelError, fmt.Sprintf(format, args...), slog.Any("error", err))
}

func parseSlogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ZerologLogger — человекочитаемый вывод для локальной разработки.
type ZerologLogger struct {
	zl zerolog.Logger
}

func NewZerologLogger(w io.Writer, level string) *ZerologLogger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stdout}).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &ZerologLogger{zl: zl}
}

func (z *ZerologLogger) Debugf(format string, args ...any) {
	z.zl.Debug().Msgf(format, args...)
}

func (z *ZerologLogger) Infof(format string, args ...any) {
	z.zl.Info().Msgf(format, args...)
}

func (z *ZerologLogger) Warnf(format string, args ...any) {
	z.zl.Warn().Msgf(format, args...)
}

func (z *ZerologLogger) Errorf(err error, format string, args ...any) {
	z.zl.Error().Err(err).Msgf(format, args...)
}

// New выбирает реализацию по формату: "console" — zerolog, всё остальное — JSON через slog.
func New(format, level string) Logger {
	if strings.EqualFold(format, "console") {
		return NewZerologLogger(os.Stdout, level)
	}

	return NewSlogLoggerWithWriter(os.Stdout, level)
}
