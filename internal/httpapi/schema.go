// Package httpapi is a JSON-over-HTTP façade in front of the listings
// client, for callers that cannot or should not embed the signing scheme
// themselves.
package httpapi

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/search_request.json
var schemaFS embed.FS

var searchRequestSchema = mustCompileSchema("schemas/search_request.json")

func mustCompileSchema(path string) *jsonschema.Schema {
	file, err := schemaFS.Open(path)
	if err != nil {
		panic(fmt.Sprintf("can't open schema %s: %s", path, err))
	}
	defer file.Close()

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, file); err != nil {
		panic(fmt.Sprintf("can't add schema resource %s: %s", path, err))
	}

	return compiler.MustCompile(path)
}

// RequestError describes why a request body was rejected, with a JSON
// pointer to the offending value.
type RequestError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request body at %q: %s", e.Path, e.Message)
}

// validateSearchBody checks a search request body against the embedded
// schema before it is decoded into typed form.
func validateSearchBody(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return &RequestError{Path: "", Message: "body is not valid JSON"}
	}

	if err := searchRequestSchema.Validate(v); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			leaf := deepestCause(validationErr)
			path := leaf.InstanceLocation
			if path == "" {
				path = "/"
			}
			return &RequestError{Path: path, Message: leaf.Message}
		}
		return &RequestError{Path: "/", Message: err.Error()}
	}

	return nil
}

// deepestCause walks a validation error to its most specific leaf, which
// names the actual offending value instead of the schema root.
func deepestCause(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(err.Causes) > 0 {
		err = err.Causes[0]
	}
	return err
}
