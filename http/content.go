package http

import (
	"bytes"
	"encoding/json"
	"net/url"
)

const (
	// JSONMediaType is the content type attached to JSON bodies.
	JSONMediaType = "application/json"

	// FormMediaType is the content type attached to URL-encoded form bodies.
	FormMediaType = "application/x-www-form-urlencoded"
)

// Content is a request body together with its content type.
type Content struct {
	Type string
	Data []byte
}

// NewContent creates Content of the given type. The data slice is copied.
func NewContent(contentType string, data []byte) *Content {
	return &Content{Type: contentType, Data: append([]byte(nil), data...)}
}

// Len returns the size of the body in bytes.
func (c *Content) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Data)
}

func (c *Content) clone() *Content {
	if c == nil {
		return nil
	}
	return NewContent(c.Type, c.Data)
}

// JSONOption configures how a value is serialized by JSONContent.
type JSONOption func(*jsonSettings)

type jsonSettings struct {
	prefix     string
	indent     string
	escapeHTML bool
}

// JSONIndent makes the serializer emit indented JSON.
func JSONIndent(prefix, indent string) JSONOption {
	return func(s *jsonSettings) {
		s.prefix = prefix
		s.indent = indent
	}
}

// JSONEscapeHTML controls whether <, > and & are escaped inside JSON strings.
// The default is false.
func JSONEscapeHTML(escape bool) JSONOption {
	return func(s *jsonSettings) {
		s.escapeHTML = escape
	}
}

// JSONContent serializes v and tags it with the JSON media type.
//
// A string, []byte or json.RawMessage is assumed to be serialized already and
// is used verbatim. Options are ignored in that case.
func JSONContent(v interface{}, options ...JSONOption) (*Content, error) {
	switch body := v.(type) {
	case string:
		return NewContent(JSONMediaType, []byte(body)), nil
	case []byte:
		return NewContent(JSONMediaType, body), nil
	case json.RawMessage:
		return NewContent(JSONMediaType, body), nil
	}

	var settings jsonSettings
	for _, option := range options {
		option(&settings)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(settings.escapeHTML)
	if settings.prefix != "" || settings.indent != "" {
		enc.SetIndent(settings.prefix, settings.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	// Encoder terminates every value with a newline.
	return &Content{Type: JSONMediaType, Data: bytes.TrimSuffix(buf.Bytes(), []byte("\n"))}, nil
}

// FormContent encodes data as application/x-www-form-urlencoded. Keys are
// emitted in sorted order.
func FormContent(data map[string]string) *Content {
	form := url.Values{}
	for key, value := range data {
		form.Set(key, value)
	}
	return &Content{Type: FormMediaType, Data: []byte(form.Encode())}
}
