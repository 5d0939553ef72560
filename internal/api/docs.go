package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

// DocName is the swag registry key of the API document.
const DocName = "vip"

//go:embed openapi.yaml
var rawSpec []byte

var registerOnce sync.Once

type jsonDoc string

func (d jsonDoc) ReadDoc() string { return string(d) }

// Load parses and validates the embedded OpenAPI document.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// Register publishes doc as JSON in the swag registry. Only the first call
// has an effect.
func Register(doc *openapi3.T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal openapi document: %w", err)
	}
	registerOnce.Do(func() {
		swag.Register(DocName, jsonDoc(data))
	})
	return nil
}

// DocsHandler serves the registered document.
func DocsHandler(w http.ResponseWriter, _ *http.Request) {
	doc, err := swag.ReadDoc(DocName)
	if err != nil {
		http.Error(w, "API documentation unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(doc))
}
