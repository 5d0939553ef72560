package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedDocumentIsValid(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)

	for _, path := range []string{
		"/vip-payment/create",
		"/vip-payment/complete",
		"/vip-payment/price",
		"/vip-payment/history",
		"/vip-payment/{paymentId}",
		"/vip/activate",
		"/vip/deactivate",
		"/vip/status/{itemId}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}

func TestDocsHandler_ServesRegisteredJSON(t *testing.T) {
	doc, err := Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, Register(doc))
	require.NoError(t, Register(doc), "second registration is a no-op")

	rr := httptest.NewRecorder()
	DocsHandler(rr, httptest.NewRequest(http.MethodGet, "/docs/openapi.json", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "3.0.3", body["openapi"])
}
