package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed request.schema.json
var requestSchemaSource string

const requestSchemaURL = "request.schema.json"

var compileRequestSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(requestSchemaURL, strings.NewReader(requestSchemaSource)); err != nil {
		return nil, fmt.Errorf("invalid request schema: %w", err)
	}
	schema, err := compiler.Compile(requestSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid request schema: %w", err)
	}
	return schema, nil
})

// ValidationError describes one schema violation in a request file.
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is every violation found in a request file.
type ValidationErrors []ValidationError

// Error joins the individual messages.
func (ve ValidationErrors) Error() string {
	var sb strings.Builder
	for i, err := range ve {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// ValidateRequestDocument checks a JSON document against the request file schema.
// Schema violations are returned as ValidationErrors.
func ValidateRequestDocument(doc []byte) error {
	schema, err := compileRequestSchema()
	if err != nil {
		return err
	}

	var data interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	err = schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if errors.As(err, &verr) {
		return collectViolations(verr)
	}
	return err
}

// collectViolations flattens the leaf causes of a schema error.
func collectViolations(err *jsonschema.ValidationError) ValidationErrors {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		return ValidationErrors{{Path: path, Message: err.Message}}
	}

	var out ValidationErrors
	for _, cause := range err.Causes {
		out = append(out, collectViolations(cause)...)
	}
	return out
}
