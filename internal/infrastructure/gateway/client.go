package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/config"
)

var (
	chargeSucceededCounter = metrics.GetOrCreateCounter(`gateway_charges_total{result="succeeded"}`)
	chargeDeclinedCounter  = metrics.GetOrCreateCounter(`gateway_charges_total{result="declined"}`)
	chargeTransportCounter = metrics.GetOrCreateCounter(`gateway_charges_total{result="transport_error"}`)
	chargeDuration         = metrics.GetOrCreateHistogram(`gateway_charge_duration_seconds`)
)

// HTTPClient talks JSON to a card-payment gateway.
type HTTPClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewHTTPClient(cfg config.GatewayConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:  cfg.SecretKey,
		httpClient: &http.Client{},
	}
}

// Charge confirms a single charge. The idempotency key makes a retried
// completion safe on the gateway side.
func (c *HTTPClient) Charge(ctx context.Context, req application.ChargeRequest) (*application.ChargeResponse, error) {
	startTime := time.Now()
	defer chargeDuration.UpdateDuration(startTime)

	url := fmt.Sprintf("%s/v1/charges", c.baseURL)
	body := chargeRequest{
		Amount:        req.AmountMinor,
		Currency:      strings.ToLower(req.Currency),
		PaymentMethod: req.MethodToken,
		Confirm:       true,
		Description:   req.Description,
	}

	resp, err := sendRequest[chargeRequest, chargeResponse](c, ctx, http.MethodPost, url, &body, req.IdempotencyKey)
	if err != nil {
		recordFailure(err)
		return nil, err
	}

	if resp.Status != statusSucceeded {
		chargeDeclinedCounter.Inc()
		return nil, &application.ChargeError{
			Outcome:    application.ChargeDeclined,
			Code:       resp.Status,
			Message:    "charge was not confirmed",
			StatusCode: http.StatusOK,
		}
	}

	chargeSucceededCounter.Inc()
	createdAt := time.Now().UTC()
	if resp.Created > 0 {
		createdAt = time.Unix(resp.Created, 0).UTC()
	}
	return &application.ChargeResponse{
		ChargeID:  resp.ID,
		Status:    resp.Status,
		CreatedAt: createdAt,
	}, nil
}

func recordFailure(err error) {
	var chargeErr *application.ChargeError
	if errors.As(err, &chargeErr) && chargeErr.Outcome == application.ChargeDeclined {
		chargeDeclinedCounter.Inc()
		return
	}
	chargeTransportCounter.Inc()
}

func sendRequest[Req any, Resp any](c *HTTPClient, ctx context.Context, method, url string, reqBody *Req, idempotencyKey string) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, transportError("request_build_failed", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.secretKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError("request_failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		chargeErr := &application.ChargeError{
			Outcome:    application.ChargeDeclined,
			Code:       "http_" + fmt.Sprint(resp.StatusCode),
			Message:    strings.TrimSpace(string(body)),
			StatusCode: resp.StatusCode,
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			chargeErr.Outcome = application.ChargeTransportError
		}

		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
			chargeErr.Code = errResp.Error.Code
			chargeErr.Message = errResp.Error.Message
		}
		return nil, chargeErr
	}

	var gatewayResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, transportError("decode_failed", err)
	}

	return &gatewayResp, nil
}

func transportError(code string, err error) *application.ChargeError {
	return &application.ChargeError{
		Outcome: application.ChargeTransportError,
		Code:    code,
		Message: "gateway unreachable",
		Err:     err,
	}
}
