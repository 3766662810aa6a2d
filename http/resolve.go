package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const authorizationHeader = "Authorization"

// ResolvedRequest is the immutable result of resolving a RequestSpec.
// Accessors return copies, so callers cannot change a ResolvedRequest after
// it has been produced.
type ResolvedRequest struct {
	method  string
	rawURL  string
	url     *url.URL
	headers []Header
	content *Content
}

// Resolve folds the accumulated configuration into a ResolvedRequest.
//
// The URI is seeded from the explicit URI when one is set, otherwise from the
// base URI joined with the resource template (see CombineURL), or from the
// resource template alone when it is an absolute URI. Registered segments then
// replace their {name} placeholders with escaped values, and query parameters
// are merged into the query component.
//
// Resolve returns the first configuration error recorded by a setter, or an
// error matching ErrMissingURI or ErrInvalidURI.
func (s *RequestSpec) Resolve() (*ResolvedRequest, error) {
	if err := s.Err(); err != nil {
		return nil, err
	}

	uri, err := s.seedURI()
	if err != nil {
		return nil, err
	}

	uri = s.substituteSegments(uri)

	if s.query.len() > 0 {
		uri = appendQuery(uri, encodeQuery(s.query))
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return nil, invalidURI(uri, err)
	}

	return &ResolvedRequest{
		method:  s.resolvedMethod(),
		rawURL:  uri,
		url:     parsed,
		headers: s.resolvedHeaders(),
		content: s.content.clone(),
	}, nil
}

func (s *RequestSpec) seedURI() (string, error) {
	if s.explicitURI != "" {
		return s.explicitURI, nil
	}

	if s.baseURI == "" && !s.hasResource {
		return "", ErrMissingURI
	}

	if s.baseURI == "" {
		// Without a base URI the template has to stand on its own.
		u, err := url.Parse(s.resourceTemplate)
		if err != nil || !u.IsAbs() {
			return "", invalidURI(s.resourceTemplate, err)
		}
		return s.resourceTemplate, nil
	}

	uri := CombineURL(s.baseURI, s.resourceTemplate)
	if _, err := url.Parse(uri); err != nil {
		return "", invalidURI(uri, err)
	}
	return uri, nil
}

// substituteSegments replaces every literal {name} with the escaped value.
// The name is escaped before matching. Segments without a placeholder and
// placeholders without a segment are left alone.
func (s *RequestSpec) substituteSegments(uri string) string {
	s.segments.each(func(name, value string) {
		placeholder := "{" + escapeData(name) + "}"
		uri = strings.ReplaceAll(uri, placeholder, escapeData(value))
	})
	return uri
}

// resolvedHeaders copies the headers and applies authentication. The
// authentication value replaces the first Authorization header in place and
// drops any others; without one it is appended.
func (s *RequestSpec) resolvedHeaders() []Header {
	headers := make([]Header, 0, len(s.headers)+1)
	if s.authorization == "" {
		return append(headers, s.headers...)
	}

	replaced := false
	for _, h := range s.headers {
		if !strings.EqualFold(h.Name, authorizationHeader) {
			headers = append(headers, h)
			continue
		}
		if !replaced {
			headers = append(headers, Header{Name: authorizationHeader, Value: s.authorization})
			replaced = true
		}
	}
	if !replaced {
		headers = append(headers, Header{Name: authorizationHeader, Value: s.authorization})
	}
	return headers
}

// Method returns the HTTP verb.
func (r *ResolvedRequest) Method() string {
	return r.method
}

// URL returns a copy of the final URI.
func (r *ResolvedRequest) URL() *url.URL {
	u := *r.url
	return &u
}

// String returns the final URI exactly as resolved.
func (r *ResolvedRequest) String() string {
	return r.rawURL
}

// Headers returns the headers in insertion order, duplicates included.
func (r *ResolvedRequest) Headers() []Header {
	return append([]Header(nil), r.headers...)
}

// Header returns the headers as a net/http Header. The body's content type is
// added as Content-Type unless a header already sets it.
func (r *ResolvedRequest) Header() http.Header {
	h := make(http.Header, len(r.headers)+1)
	for _, header := range r.headers {
		h.Add(header.Name, header.Value)
	}
	if r.content != nil && r.content.Type != "" && h.Get("Content-Type") == "" {
		h.Set("Content-Type", r.content.Type)
	}
	return h
}

// Authorization returns the effective Authorization header value, or "".
func (r *ResolvedRequest) Authorization() string {
	for _, h := range r.headers {
		if strings.EqualFold(h.Name, authorizationHeader) {
			return h.Value
		}
	}
	return ""
}

// Content returns a copy of the body, or nil when there is none.
func (r *ResolvedRequest) Content() *Content {
	return r.content.clone()
}

// NewHTTPRequest builds a fresh *http.Request for one exchange. It can be
// called any number of times; each call gets its own body reader.
func (r *ResolvedRequest) NewHTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.content != nil {
		body = bytes.NewReader(r.content.Data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header = r.Header()
	return req, nil
}
