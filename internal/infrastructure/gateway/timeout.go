package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/DanielPopoola/webshop-vip/internal/application"
)

// DefaultTimeout bounds a single charge when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// TimeoutClient bounds every charge by a deadline. There are no retries: the
// client decides whether to complete again.
type TimeoutClient struct {
	inner   application.GatewayClient
	timeout time.Duration
}

func NewTimeoutClient(inner application.GatewayClient, timeout time.Duration) *TimeoutClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &TimeoutClient{
		inner:   inner,
		timeout: timeout,
	}
}

func (c *TimeoutClient) Charge(ctx context.Context, req application.ChargeRequest) (*application.ChargeResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		resp *application.ChargeResponse
		err  error
	}
	done := make(chan result, 1)

	go func() {
		resp, err := c.inner.Charge(ctx, req)
		done <- result{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
			if _, ok := application.IsChargeError(r.err); !ok {
				return nil, timeoutError(r.err)
			}
		}
		return r.resp, r.err
	case <-ctx.Done():
		return nil, timeoutError(ctx.Err())
	}
}

func timeoutError(err error) *application.ChargeError {
	return &application.ChargeError{
		Outcome: application.ChargeTransportError,
		Code:    "timeout",
		Message: "gateway did not answer in time",
		Err:     err,
	}
}
