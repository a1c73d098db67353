package http

import (
	"context"
	"fmt"
	"sync"

	"grameego/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/swaggo/swag"
)

// LoadContract parses and validates the embedded OpenAPI document and builds
// a router over it for request validation.
func LoadContract(ctx context.Context) (*openapi3.T, routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, nil, fmt.Errorf("validate openapi document: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("build openapi router: %w", err)
	}
	return doc, router, nil
}

// swaggerDoc serves the contract to echo-swagger through the swag registry.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	return string(api.OpenAPI)
}

var registerDocOnce sync.Once

func registerSwaggerDoc() {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{})
	})
}
