// Package config loads request files and CLI settings.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/reqspec/http"
)

// ErrEmptyRequestFile is returned when a request file has no content.
var ErrEmptyRequestFile = errors.New("request file is empty")

// RequestFile is a request description stored on disk.
type RequestFile struct {
	Method   string                 `json:"method,omitempty"`
	URI      string                 `json:"uri,omitempty"`
	BaseURI  string                 `json:"baseUri,omitempty"`
	Resource string                 `json:"resource,omitempty"`
	Segments map[string]interface{} `json:"segments,omitempty"`
	Query    map[string]interface{} `json:"query,omitempty"`
	Headers  []string               `json:"headers,omitempty"`
	Auth     *AuthConfig            `json:"auth,omitempty"`
	Basic    *BasicAuthConfig       `json:"basic,omitempty"`
	JSON     json.RawMessage        `json:"json,omitempty"`
	Form     map[string]string      `json:"form,omitempty"`
	Extract  map[string]string      `json:"extract,omitempty"`
}

// AuthConfig is an explicit Authorization scheme and credential.
type AuthConfig struct {
	Scheme     string `json:"scheme"`
	Credential string `json:"credential,omitempty"`
}

// BasicAuthConfig holds basic authentication credentials.
type BasicAuthConfig struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// LoadRequestFile reads and validates a request file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
func LoadRequestFile(path string) (*RequestFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	return ParseRequestFile(data, path)
}

// ParseRequestFile parses request file data. YAML is assumed unless path
// ends in .json. The document is validated against the embedded schema
// before it is decoded.
func ParseRequestFile(data []byte, path string) (*RequestFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyRequestFile
	}

	doc, err := toJSON(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, err
	}

	if err := ValidateRequestDocument(doc); err != nil {
		return nil, fmt.Errorf("invalid request file %s: %w", path, err)
	}

	var file RequestFile
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode request file: %w", err)
	}
	return &file, nil
}

func toJSON(data []byte, ext string) ([]byte, error) {
	if ext == ".json" {
		if !json.Valid(data) {
			return nil, errors.New("failed to parse JSON request file: malformed JSON")
		}
		return data, nil
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML request file: %w", err)
	}
	if doc == nil {
		return nil, ErrEmptyRequestFile
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML request file: %w", err)
	}
	return out, nil
}

// Apply copies the file's settings onto spec and returns it.
// Segments and query parameters are applied in key order.
func (f *RequestFile) Apply(spec *http.RequestSpec) *http.RequestSpec {
	if f.Method != "" {
		spec.SetMethod(f.Method)
	}
	if f.URI != "" {
		spec.SetURI(f.URI)
	}
	if f.BaseURI != "" {
		spec.SetBaseURI(f.BaseURI)
	}
	if f.Resource != "" {
		spec.SetResourceURI(f.Resource)
	}

	for _, name := range sortedKeys(f.Segments) {
		spec.AddURISegment(name, f.Segments[name])
	}

	if len(f.Query) > 0 {
		query := make(map[string]string, len(f.Query))
		for k, v := range f.Query {
			query[k] = fmt.Sprint(v)
		}
		spec.AddQueryMap(query)
	}

	for _, h := range f.Headers {
		name, value, _ := strings.Cut(h, ":")
		spec.AddHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	if f.Auth != nil {
		spec.SetAuthentication(f.Auth.Scheme, f.Auth.Credential)
	}
	if f.Basic != nil {
		spec.SetBasicAuth(f.Basic.Username, f.Basic.Password)
	}

	if len(f.JSON) > 0 {
		spec.SetJSONContent(f.JSON)
	}
	if len(f.Form) > 0 {
		spec.SetFormContent(f.Form)
	}

	return spec
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
