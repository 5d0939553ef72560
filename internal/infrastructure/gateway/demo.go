package gateway

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DanielPopoola/webshop-vip/internal/application"
)

// DemoClient accepts every charge without contacting anyone. Select it only
// where no real gateway is configured.
type DemoClient struct {
	logger *slog.Logger
}

func NewDemoClient(logger *slog.Logger) *DemoClient {
	return &DemoClient{logger: logger}
}

func (c *DemoClient) Charge(ctx context.Context, req application.ChargeRequest) (*application.ChargeResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, transportError("canceled", err)
	}

	chargeID := "demo_" + uuid.New().String()
	c.logger.WarnContext(ctx, "demo gateway accepted charge without processing",
		"charge_id", chargeID,
		"amount", req.AmountMinor,
		"currency", req.Currency,
		"idempotency_key", req.IdempotencyKey,
	)
	chargeSucceededCounter.Inc()

	return &application.ChargeResponse{
		ChargeID:  chargeID,
		Status:    statusSucceeded,
		CreatedAt: time.Now().UTC(),
	}, nil
}
