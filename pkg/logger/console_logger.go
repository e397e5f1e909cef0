package logger

import (
	"log/slog"
	"os"
)

// ConsoleLogger writes text records to stdout.
type ConsoleLogger struct {
	logger *slog.Logger
}

func NewConsoleLogger(level string) Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(level)})
	return &ConsoleLogger{logger: slog.New(handler)}
}

func (l *ConsoleLogger) Debug(args ...interface{}) { l.logger.Debug(formatArgs(args...)) }
func (l *ConsoleLogger) Info(args ...interface{})  { l.logger.Info(formatArgs(args...)) }
func (l *ConsoleLogger) Warn(args ...interface{})  { l.logger.Warn(formatArgs(args...)) }
func (l *ConsoleLogger) Error(args ...interface{}) { l.logger.Error(formatArgs(args...)) }

func (l *ConsoleLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	os.Exit(1)
}

func (l *ConsoleLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}
