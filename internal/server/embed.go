package server

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

//go:embed openapi.yaml
var openapiSpec []byte

// requestValidator checks incoming requests against the embedded OpenAPI
// document. Paths in the document are relative to the /api prefix.
type requestValidator struct {
	doc *openapi3.T
}

func newRequestValidator() (*requestValidator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiSpec)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return &requestValidator{doc: doc}, nil
}

func (v *requestValidator) validate(r *http.Request, path string) error {
	pathItem := v.doc.Paths.Value(path)
	if pathItem == nil {
		return fmt.Errorf("no operation for %s", path)
	}
	op := pathItem.GetOperation(r.Method)
	if op == nil {
		return fmt.Errorf("no operation for %s %s", r.Method, path)
	}

	route := &routers.Route{
		Spec:      v.doc,
		Path:      path,
		PathItem:  pathItem,
		Method:    r.Method,
		Operation: op,
	}
	return openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request: r,
		Route:   route,
	})
}
