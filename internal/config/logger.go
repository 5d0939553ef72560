package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	slogloki "github.com/samber/slog-loki/v3"
)

type LoggerConfig struct {
	Level   string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `koanf:"format" validate:"omitempty,oneof=text json"`
	LokiURL string `koanf:"loki_url" validate:"omitempty,url"`
	Service string `koanf:"service"`
}

func (c LoggerConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger. With a Loki URL configured, records are
// shipped to Loki instead of stdout.
func (c LoggerConfig) NewLogger() *slog.Logger {
	service := c.Service
	if service == "" {
		service = "webshop-vip"
	}

	if c.LokiURL != "" {
		if logger, err := c.remoteLogger(service); err == nil {
			return logger
		}
	}

	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	var handler slog.Handler
	if strings.EqualFold(c.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", service)
}

func (c LoggerConfig) remoteLogger(service string) (*slog.Logger, error) {
	lokiConfig, err := loki.NewDefaultConfig(c.LokiURL)
	if err != nil {
		return nil, err
	}
	client, err := loki.New(lokiConfig)
	if err != nil {
		return nil, err
	}

	return slog.New(slogloki.Option{
		Level:  c.SlogLevel(),
		Client: client,
	}.NewLokiHandler()).With("service", service), nil
}
