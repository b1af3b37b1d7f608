package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/san-kum/cardsearch/internal/config"
)

// Init builds the process logger from the log section of the config and
// installs it as the slog default. Records go to w, or stderr when w is nil.
func Init(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	asJSON, err := cfg.JSON()
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// New tags the default logger with a component name.
func New(component string) *slog.Logger {
	return slog.Default().With(slog.String("component", component))
}

func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
