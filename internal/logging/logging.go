// README: JSON structured logging on log/slog, one line per event on stdout.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds the service logger and installs it as the slog default.
func New(service, level string) *slog.Logger {
	log := NewWithWriter(os.Stdout, service, level)
	slog.SetDefault(log)
	return log
}

func NewWithWriter(w io.Writer, service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "timestamp"
			case slog.MessageKey:
				a.Key = "message"
			}
			return a
		},
	})
	return slog.New(handler).With("service", service, "hostname", hostname())
}

// Error logs msg under action with the error nested as error.msg.
func Error(log *slog.Logger, action, msg string, err error, args ...any) {
	args = append(args, "action", action)
	if err != nil {
		args = append(args, slog.Group("error", "msg", err.Error()))
	}
	OrDefault(log).Error(msg, args...)
}

func Info(log *slog.Logger, action, msg string, args ...any) {
	OrDefault(log).Info(msg, append(args, "action", action)...)
}

func OrDefault(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "localhost"
	}
	return name
}
