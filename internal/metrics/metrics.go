package metrics

import (
	"log/slog"
	"net/http"

	"github.com/VictoriaMetrics/metrics"

	"github.com/DanielPopoola/webshop-vip/internal/config"
)

// Setup starts pushing metrics when a push URL is configured. The pull
// endpoint from Handler works either way.
func Setup(cfg config.MetricsConfig, logger *slog.Logger) {
	if cfg.PushURL == "" {
		return
	}

	err := metrics.InitPush(cfg.PushURL, cfg.PushInterval, cfg.CommonLabels, true)
	if err != nil {
		logger.Error("error initializing metrics push", "url", cfg.PushURL, "error", err)
		return
	}
	logger.Info("metrics push enabled", "url", cfg.PushURL, "interval", cfg.PushInterval)
}

// Handler exposes every registered metric in Prometheus text format.
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		metrics.WritePrometheus(w, true)
	})
}
