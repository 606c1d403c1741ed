package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	log  *slog.Logger
	once sync.Once
)

// Init configures the process-wide logger. Safe to call more than once.
func Init() {
	once.Do(func() {
		level := slog.LevelInfo
		if os.Getenv("APP_ENV") != "production" {
			level = slog.LevelDebug
		}
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(log)
	})
}

func get() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}

func Info(msg string, args ...any) {
	get().Info(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	get().Error(msg, normalize(args)...)
}

func Debug(msg string, args ...any) {
	get().Debug(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	get().Warn(msg, normalize(args)...)
}

// normalize lets call sites pass a bare error or value after the message
// without breaking slog's key-value pairing.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	out := make([]any, 0, len(args)+1)
	if err, ok := args[0].(error); ok {
		out = append(out, "error", err.Error())
		out = append(out, args[1:]...)
		return out
	}
	out = append(out, "detail")
	out = append(out, args...)
	return out
}
