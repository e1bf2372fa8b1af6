// Package api holds the HTTP contract of the negotiation service: the
// embedded OpenAPI document, its wire types and the docs routes.
package api

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document.
// Callers must not modify the returned value.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		swagger, swaggerErr = loadSwagger()
	})
	return swagger, swaggerErr
}

// LoadSwagger parses a fresh copy of the OpenAPI document that callers may modify.
func LoadSwagger() (*openapi3.T, error) {
	return loadSwagger()
}

func loadSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}
