package logx

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

const FormatJSON = "json"

// NewLogger: для format=json используется slog.JSONHandler, иначе цветной tint. Нераспознанный level трактуется как info.
func NewLogger(w io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	if format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.DateTime,
	}))
}
