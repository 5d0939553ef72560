package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanielPopoola/webshop-vip/internal/application"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest"
)

// Mock services
type mockCreateService struct {
	createFn func(ctx context.Context, cmd services.CreatePaymentCommand) (*domain.PaymentAttempt, error)
}

func (m *mockCreateService) CreatePayment(ctx context.Context, cmd services.CreatePaymentCommand) (*domain.PaymentAttempt, error) {
	return m.createFn(ctx, cmd)
}

type mockCompleteService struct {
	completeFn func(ctx context.Context, cmd services.CompletePaymentCommand) (*domain.PaymentAttempt, error)
}

func (m *mockCompleteService) CompletePayment(ctx context.Context, cmd services.CompletePaymentCommand) (*domain.PaymentAttempt, error) {
	return m.completeFn(ctx, cmd)
}

type mockQueryService struct {
	getPaymentFn   func(ctx context.Context, paymentID int64, ownerEmail string) (*domain.PaymentAttempt, error)
	listPaymentsFn func(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error)
}

func (m *mockQueryService) GetPrice() domain.Money {
	return domain.VIPPrice
}

func (m *mockQueryService) GetPayment(ctx context.Context, paymentID int64, ownerEmail string) (*domain.PaymentAttempt, error) {
	return m.getPaymentFn(ctx, paymentID, ownerEmail)
}

func (m *mockQueryService) ListPayments(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error) {
	return m.listPaymentsFn(ctx, ownerEmail, limit, offset)
}

type mockActivationService struct {
	activateFn   func(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error)
	deactivateFn func(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error)
	statusFn     func(ctx context.Context, listingID int64) (*services.PromotionStatus, error)
}

func (m *mockActivationService) Activate(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error) {
	return m.activateFn(ctx, cmd)
}

func (m *mockActivationService) Deactivate(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error) {
	return m.deactivateFn(ctx, cmd)
}

func (m *mockActivationService) Status(ctx context.Context, listingID int64) (*services.PromotionStatus, error) {
	return m.statusFn(ctx, listingID)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pendingPayment(id int64) *domain.PaymentAttempt {
	return &domain.PaymentAttempt{
		ID:            id,
		ListingID:     42,
		OwnerEmail:    "a@x.com",
		AmountCents:   200,
		Currency:      "EUR",
		Status:        domain.StatusPending,
		PaymentMethod: domain.MethodCard,
		Card:          &domain.MaskedCard{LastFour: "4242", Holder: "Ann", Expiry: "12/30"},
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func serve(h *Handlers, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Router(RouterConfig{}).ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) rest.ErrorResponse {
	t.Helper()
	var resp rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreatePayment_Success(t *testing.T) {
	var got services.CreatePaymentCommand
	create := &mockCreateService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (*domain.PaymentAttempt, error) {
			got = cmd
			return pendingPayment(1), nil
		},
	}
	h := NewHandlers(create, nil, nil, nil, testLogger())

	rr := serve(h, http.MethodPost, "/vip-payment/create", map[string]any{
		"itemId":     42,
		"ownerEmail": "a@x.com",
		"cardNumber": "4242 4242 4242 4242",
		"cardHolder": "Ann",
		"expiryDate": "12/30",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"success": true,
		"paymentId": 1,
		"itemId": 42,
		"amount": 2.00,
		"status": "PENDING",
		"message": "Payment created successfully"
	}`, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"amount":2.00`)

	assert.Equal(t, int64(42), got.ListingID)
	assert.Equal(t, "a@x.com", got.OwnerEmail)
	require.NotNil(t, got.Card)
	assert.Equal(t, "4242 4242 4242 4242", got.Card.Number)
}

func TestCreatePayment_NoCardFieldsMeansNoCard(t *testing.T) {
	create := &mockCreateService{
		createFn: func(ctx context.Context, cmd services.CreatePaymentCommand) (*domain.PaymentAttempt, error) {
			assert.Nil(t, cmd.Card)
			return nil, application.NewValidationError(domain.NewMissingRequiredFieldError("card details"))
		},
	}
	h := NewHandlers(create, nil, nil, nil, testLogger())

	rr := serve(h, http.MethodPost, "/vip-payment/create", map[string]any{"itemId": 42, "ownerEmail": "a@x.com"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rr).Error.Code)
}

func TestCreatePayment_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"itemId":`},
		{"missing owner", `{"itemId":42}`},
		{"non positive item", `{"itemId":0,"ownerEmail":"a@x.com"}`},
	}

	h := NewHandlers(&mockCreateService{
		createFn: func(context.Context, services.CreatePaymentCommand) (*domain.PaymentAttempt, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}, nil, nil, nil, testLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/vip-payment/create", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()
			h.Router(RouterConfig{}).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			resp := decodeError(t, rr)
			assert.False(t, resp.Success)
			assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
		})
	}
}

func TestServiceErrorsMapToStatusFamilies(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"not found", application.NewItemNotFoundError(domain.ErrListingNotFound), http.StatusBadRequest, "ITEM_NOT_FOUND", false},
		{"forbidden", application.NewItemForbiddenError(), http.StatusBadRequest, "NOT_OWNER", false},
		{"conflict", application.NewPaymentPendingError(nil), http.StatusBadRequest, "PAYMENT_ALREADY_PENDING", false},
		{"already completed", application.NewPaymentCompletedError(), http.StatusBadRequest, "PAYMENT_ALREADY_COMPLETED", false},
		{"gateway", application.NewGatewayError(&application.ChargeError{Outcome: application.ChargeTransportError}), http.StatusInternalServerError, "GATEWAY_ERROR", true},
		{"internal", application.NewInternalError(errors.New("connection reset")), http.StatusInternalServerError, "INTERNAL_ERROR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complete := &mockCompleteService{
				completeFn: func(context.Context, services.CompletePaymentCommand) (*domain.PaymentAttempt, error) {
					return nil, tt.err
				},
			}
			h := NewHandlers(nil, complete, nil, nil, testLogger())

			rr := serve(h, http.MethodPost, "/vip-payment/complete", map[string]any{
				"paymentId":       1,
				"ownerEmail":      "a@x.com",
				"paymentMethodId": "pm_card_visa",
			})

			assert.Equal(t, tt.status, rr.Code)
			resp := decodeError(t, rr)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.retryable, resp.Error.Retryable)
			assert.NotContains(t, resp.Error.Message, "connection reset")
		})
	}
}

func TestCompletePayment_Success(t *testing.T) {
	complete := &mockCompleteService{
		completeFn: func(ctx context.Context, cmd services.CompletePaymentCommand) (*domain.PaymentAttempt, error) {
			assert.Equal(t, "pm_card_visa", cmd.GatewayToken)
			p := pendingPayment(cmd.PaymentID)
			require.NoError(t, p.Complete("ch_1", time.Now()))
			return p, nil
		},
	}
	h := NewHandlers(nil, complete, nil, nil, testLogger())

	rr := serve(h, http.MethodPost, "/vip-payment/complete", map[string]any{
		"paymentId":       1,
		"ownerEmail":      "a@x.com",
		"paymentMethodId": "pm_card_visa",
	})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"success": true,
		"paymentId": 1,
		"itemId": 42,
		"status": "COMPLETED",
		"message": "Payment completed and VIP status activated"
	}`, rr.Body.String())
}

func TestGetPrice(t *testing.T) {
	h := NewHandlers(nil, nil, &mockQueryService{}, nil, testLogger())

	rr := serve(h, http.MethodGet, "/vip-payment/price", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"price":2.00`)
	assert.Contains(t, rr.Body.String(), `"currency":"EUR"`)
}

func TestGetPayment(t *testing.T) {
	query := &mockQueryService{
		getPaymentFn: func(ctx context.Context, paymentID int64, ownerEmail string) (*domain.PaymentAttempt, error) {
			assert.Equal(t, int64(7), paymentID)
			if ownerEmail != "a@x.com" {
				return nil, application.NewPaymentForbiddenError()
			}
			return pendingPayment(paymentID), nil
		},
	}
	h := NewHandlers(nil, nil, query, nil, testLogger())

	rr := serve(h, http.MethodGet, "/vip-payment/7?ownerEmail=a@x.com", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var view map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, true, view["success"])
	assert.EqualValues(t, 7, view["paymentId"])
	assert.Equal(t, "4242", view["cardLastFour"])
	assert.NotContains(t, rr.Body.String(), "cardNumber")

	rr = serve(h, http.MethodGet, "/vip-payment/7?ownerEmail=b@x.com", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "NOT_OWNER", decodeError(t, rr).Error.Code)

	rr = serve(h, http.MethodGet, "/vip-payment/seven?ownerEmail=a@x.com", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_INPUT", decodeError(t, rr).Error.Code)

	rr = serve(h, http.MethodGet, "/vip-payment/7", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListPayments(t *testing.T) {
	query := &mockQueryService{
		listPaymentsFn: func(ctx context.Context, ownerEmail string, limit, offset int) ([]*domain.PaymentAttempt, error) {
			assert.Equal(t, "a@x.com", ownerEmail)
			assert.Equal(t, 5, limit)
			assert.Equal(t, 0, offset)
			return []*domain.PaymentAttempt{pendingPayment(2), pendingPayment(1)}, nil
		},
	}
	h := NewHandlers(nil, nil, query, nil, testLogger())

	rr := serve(h, http.MethodGet, "/vip-payment/history?ownerEmail=a@x.com&limit=5", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		Payments []rest.PaymentView `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, int64(2), resp.Payments[0].PaymentID)

	rr = serve(h, http.MethodGet, "/vip-payment/history?ownerEmail=a@x.com&limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestActivation(t *testing.T) {
	activation := &mockActivationService{
		activateFn: func(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error) {
			return nil, application.NewPaymentRequiredError()
		},
		deactivateFn: func(ctx context.Context, cmd services.ActivationCommand) (*domain.Listing, error) {
			return &domain.Listing{ID: cmd.ListingID, OwnerEmail: cmd.OwnerEmail}, nil
		},
		statusFn: func(ctx context.Context, listingID int64) (*services.PromotionStatus, error) {
			pending := int64(3)
			return &services.PromotionStatus{ListingID: listingID, PendingPaymentID: &pending}, nil
		},
	}
	h := NewHandlers(nil, nil, nil, activation, testLogger())

	rr := serve(h, http.MethodPost, "/vip/activate", map[string]any{"itemId": 42, "ownerEmail": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decodeError(t, rr)
	assert.Equal(t, "PAYMENT_REQUIRED", resp.Error.Code)
	assert.Equal(t, "Payment is required to activate VIP. Please complete payment first.", resp.Error.Message)

	rr = serve(h, http.MethodPost, "/vip/deactivate", map[string]any{"itemId": 42, "ownerEmail": "a@x.com"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"isVip":false`)

	rr = serve(h, http.MethodGet, "/vip/status/42", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"pendingPaymentId":3`)
}

func TestHealth(t *testing.T) {
	h := NewHandlers(nil, nil, nil, nil, testLogger())

	healthy := httptest.NewRecorder()
	h.Router(RouterConfig{Health: pingerFunc(func(context.Context) error { return nil })}).
		ServeHTTP(healthy, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, healthy.Code)

	down := httptest.NewRecorder()
	h.Router(RouterConfig{Health: pingerFunc(func(context.Context) error { return errors.New("no db") })}).
		ServeHTTP(down, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, down.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, down.Body.String())
}
