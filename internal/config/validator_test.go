package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "single",
			err:      ValidationError{Path: "/method", Message: "expected string"},
			expected: "/method: expected string",
		},
		{
			name: "joined",
			err: ValidationErrors{
				{Path: "/uri", Message: "length must be >= 1"},
				{Path: "/headers/0", Message: "does not match pattern"},
			},
			expected: "/uri: length must be >= 1; /headers/0: does not match pattern",
		},
		{
			name:     "empty",
			err:      ValidationErrors{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestValidateRequestDocument(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{name: "uri only", doc: `{"uri": "https://api.example.com"}`, valid: true},
		{name: "base and resource", doc: `{"baseUri": "https://api.example.com", "resource": "users/{id}", "segments": {"id": 1}}`, valid: true},
		{name: "any json body", doc: `{"uri": "https://api.example.com", "json": [1, "two", null]}`, valid: true},
		{name: "no target", doc: `{"method": "GET"}`, valid: false},
		{name: "empty method", doc: `{"uri": "https://api.example.com", "method": ""}`, valid: false},
		{name: "query array value", doc: `{"uri": "https://api.example.com", "query": {"a": [1]}}`, valid: false},
		{name: "basic extra field", doc: `{"uri": "https://api.example.com", "basic": {"username": "u", "token": "t"}}`, valid: false},
		{name: "empty extract path", doc: `{"uri": "https://api.example.com", "extract": {"id": ""}}`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequestDocument([]byte(tt.doc))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var violations ValidationErrors
			require.True(t, errors.As(err, &violations), "expected ValidationErrors, got %T", err)
			assert.NotEmpty(t, violations)
		})
	}
}

func TestValidateRequestDocument_InvalidJSON(t *testing.T) {
	err := ValidateRequestDocument([]byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
