package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aretw0/conncheck/api"
	"github.com/aretw0/conncheck/pkg/domain"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// Validator checks backend responses against the embedded OpenAPI document,
// so that a payload with missing or mistyped fields fails at the boundary.
type Validator struct {
	router routers.Router
}

// NewValidator loads the embedded document and builds its router.
func NewValidator(ctx context.Context) (*Validator, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}
	return &Validator{router: router}, nil
}

// ValidateResponse validates status, content type and body of a response.
// Requests to paths unknown to the document are not checked.
func (v *Validator) ValidateResponse(ctx context.Context, req *http.Request, resp *http.Response, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		return nil
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: resp.StatusCode,
		Header: resp.Header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}
	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrMalformedResponse, req.Method, req.URL.Path, err)
	}
	return nil
}
