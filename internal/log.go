package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/semilin/kmdata/internal/config"
	"github.com/spf13/viper"
)

func newDefaultLogHandler(level slog.Level) slog.Handler {
	return tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
}

func InitLogging() {
	logEnabled := viper.GetBool(config.KeyLog)

	logLevel := viper.GetString(config.KeyLogLevel)
	var level slog.Level
	err := level.UnmarshalText([]byte(logLevel))
	if err != nil {
		level = slog.LevelInfo
	}

	var handler slog.Handler
	if logEnabled {
		handler = newDefaultLogHandler(level)
	} else {
		handler = slog.DiscardHandler
	}

	slog.SetDefault(slog.New(handler))
}
