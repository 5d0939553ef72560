// Package gateway holds the card-payment gateway clients.
package gateway

import (
	"log/slog"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/config"
)

// New builds the configured client wrapped in the timeout decorator.
func New(cfg config.GatewayConfig, logger *slog.Logger) application.GatewayClient {
	var inner application.GatewayClient
	switch cfg.Provider {
	case "demo":
		logger.Warn("payment gateway running in demo mode, charges are not processed")
		inner = NewDemoClient(logger)
	default:
		inner = NewHTTPClient(cfg)
	}
	return NewTimeoutClient(inner, cfg.Timeout)
}
