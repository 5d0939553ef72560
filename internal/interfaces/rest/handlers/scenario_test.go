package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/DanielPopoola/webshop-vip/internal/api"
	"github.com/DanielPopoola/webshop-vip/internal/application/services"
	"github.com/DanielPopoola/webshop-vip/internal/domain"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/gateway"
	"github.com/DanielPopoola/webshop-vip/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/webshop-vip/internal/interfaces/rest/middleware"
)

// ScenarioTestSuite drives the full HTTP stack over the in-memory store and
// the demo gateway.
type ScenarioTestSuite struct {
	suite.Suite
	store  *memory.Store
	server *httptest.Server
}

func TestScenarioSuite(t *testing.T) {
	suite.Run(t, new(ScenarioTestSuite))
}

func (s *ScenarioTestSuite) SetupTest() {
	logger := testLogger()
	s.store = memory.NewStore()
	s.store.SeedListing(domain.Listing{ID: 42, Title: "Vintage bike", OwnerEmail: "a@x.com"})

	payments, listings := s.store.Payments(), s.store.Listings()
	h := NewHandlers(
		services.NewCreatePaymentService(s.store, logger),
		services.NewCompletePaymentService(payments, s.store, gateway.NewDemoClient(logger), logger),
		services.NewQueryService(payments, listings),
		services.NewActivationService(payments, listings, s.store, logger),
		logger,
	)

	doc, err := api.Load(context.Background())
	s.Require().NoError(err)
	validator, err := middleware.OpenAPIValidator(doc, logger)
	s.Require().NoError(err)

	s.server = httptest.NewServer(h.Router(RouterConfig{Validator: validator}))
	s.T().Cleanup(s.server.Close)
}

func (s *ScenarioTestSuite) post(path string, body any) (int, map[string]any) {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(data))
	s.Require().NoError(err)
	defer resp.Body.Close()

	var out map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func errorCode(body map[string]any) string {
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func (s *ScenarioTestSuite) Test_PurchaseFlow() {
	create := map[string]any{
		"itemId":     42,
		"ownerEmail": "a@x.com",
		"cardNumber": "4242424242424242",
		"cardHolder": "Ann Owner",
		"expiryDate": "12/30",
	}

	status, body := s.post("/vip-payment/create", create)
	s.Require().Equal(http.StatusOK, status)
	s.EqualValues(1, body["paymentId"])
	s.Equal("PENDING", body["status"])
	s.EqualValues(2, body["amount"])

	status, body = s.post("/vip-payment/create", create)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("PAYMENT_ALREADY_PENDING", errorCode(body))

	status, body = s.post("/vip-payment/complete", map[string]any{
		"paymentId":       1,
		"ownerEmail":      "b@x.com",
		"paymentMethodId": "pm_card_visa",
	})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("NOT_OWNER", errorCode(body))

	status, body = s.post("/vip-payment/complete", map[string]any{
		"paymentId":       1,
		"ownerEmail":      "a@x.com",
		"paymentMethodId": "pm_card_visa",
	})
	s.Require().Equal(http.StatusOK, status)
	s.Equal("COMPLETED", body["status"])

	listing, err := s.store.Listings().FindByID(context.Background(), 42)
	s.Require().NoError(err)
	s.True(listing.IsPromoted)

	status, body = s.post("/vip-payment/complete", map[string]any{"paymentId": 1, "ownerEmail": "a@x.com"})
	s.Equal(http.StatusBadRequest, status)
	s.Equal("PAYMENT_ALREADY_COMPLETED", errorCode(body))

	status, body = s.post("/vip-payment/create", create)
	s.Equal(http.StatusBadRequest, status)
	s.Equal("ITEM_ALREADY_VIP", errorCode(body))
}

func (s *ScenarioTestSuite) Test_StrangerWithBadCardIsForbidden() {
	status, body := s.post("/vip-payment/create", map[string]any{
		"itemId":        42,
		"ownerEmail":    "b@x.com",
		"paymentMethod": "paypal",
		"cardNumber":    "1",
	})

	s.Equal(http.StatusBadRequest, status)
	s.Equal("NOT_OWNER", errorCode(body))
}

func (s *ScenarioTestSuite) Test_SchemaRejectsBeforeServices() {
	status, body := s.post("/vip-payment/create", map[string]any{"itemId": "42", "ownerEmail": "a@x.com"})

	s.Equal(http.StatusBadRequest, status)
	s.Equal("INVALID_INPUT", errorCode(body))

	pending, err := s.store.Payments().FindPending(context.Background(), 42)
	s.Require().NoError(err)
	s.Nil(pending)
}

func TestRouter_UnknownRouteIs404(t *testing.T) {
	h := NewHandlers(nil, nil, nil, nil, testLogger())
	rr := httptest.NewRecorder()

	h.Router(RouterConfig{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
}
