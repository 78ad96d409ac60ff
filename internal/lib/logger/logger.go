// Package logger создает slog.Logger в зависимости от окружения.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/adaso/internal/config"
)

// New возвращает текстовый логгер уровня debug для local и dev
// и JSON логгер уровня info для production.
func New(env string) *slog.Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env string, w io.Writer) *slog.Logger {
	if env == config.EnvProd {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
