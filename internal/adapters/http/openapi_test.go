package http_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/samirrijal/maplink/api"
)

func loadOpenAPI(t *testing.T) *openapi3.T {
	t.Helper()
	loader := &openapi3.Loader{IsExternalRefsAllowed: false}
	spec, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		t.Fatalf("failed to parse OpenAPI document: %v", err)
	}
	return spec
}

// TestOpenAPISpec validates the embedded OpenAPI document.
func TestOpenAPISpec(t *testing.T) {
	spec := loadOpenAPI(t)

	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("OpenAPI validation failed: %v", err)
	}

	expectedPaths := []string{
		"/v1/health",
		"/v1/ready",
		"/v1/analyze",
		"/v1/links",
		"/v1/distance",
		"/v1/samples",
		"/v1/samples/{id}",
		"/v1/samples/{id}/analysis",
		"/graphql",
	}
	for _, path := range expectedPaths {
		if item := spec.Paths.Find(path); item == nil {
			t.Errorf("expected path %s not found in spec", path)
		}
	}

	analyze := spec.Paths.Find("/v1/analyze")
	if analyze != nil && (analyze.Get == nil || analyze.Post == nil) {
		t.Error("expected GET and POST on /v1/analyze")
	}

	expectedSchemas := []string{
		"Coordinate",
		"Leg",
		"Links",
		"Analysis",
		"Distance",
		"Sample",
		"APIError",
		"Pagination",
	}
	for _, schema := range expectedSchemas {
		if spec.Components.Schemas[schema] == nil {
			t.Errorf("expected schema %s not found", schema)
		}
	}

	t.Logf("OpenAPI spec valid: %d paths, %d schemas", len(spec.Paths.Map()), len(spec.Components.Schemas))
}

// TestOpenAPIInfo verifies spec metadata.
func TestOpenAPIInfo(t *testing.T) {
	spec := loadOpenAPI(t)

	if spec.Info.Title != "MapLink API" {
		t.Errorf("expected title 'MapLink API', got %q", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", spec.Info.Version)
	}
	if spec.Info.Description == "" {
		t.Error("expected non-empty description")
	}
	if len(spec.Servers) == 0 {
		t.Fatal("expected at least one server")
	}
}
