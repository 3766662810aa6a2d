package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// TimingInfo stores timing information for one exchange.
// All durations represent the time spent in each phase of the request.
type TimingInfo struct {
	// StartTime is when the request started
	StartTime time.Time

	// DNSLookupTime is the time spent looking up the DNS address
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing a TCP connection
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent performing the TLS handshake (for HTTPS)
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is measured from the end of the last connection phase
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the response body
	ContentTransferTime time.Duration

	// TotalTime is the total time from request start to completion
	TotalTime time.Duration
}

// Response is a fully read HTTP response.
type Response struct {
	// StatusCode is the HTTP status code (e.g., 200, 404, 500)
	StatusCode int

	// Status is the HTTP status string (e.g., "200 OK")
	Status string

	// Headers contains the response headers
	Headers http.Header

	// Timing is filled in by HTTPTransport; other transports may leave it zero.
	Timing TimingInfo

	body []byte
}

// NewResponse creates a Response from already-read parts. Transports other
// than HTTPTransport, including test fakes, use it to build their results.
func NewResponse(statusCode int, headers http.Header, body []byte) *Response {
	if headers == nil {
		headers = make(http.Header)
	}
	return &Response{
		StatusCode: statusCode,
		Status:     fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Headers:    headers,
		body:       body,
	}
}

// Bytes returns the response body.
func (r *Response) Bytes() []byte {
	return r.body
}

// Text returns the response body as a string.
func (r *Response) Text() string {
	return string(r.body)
}

// Size returns the body size in bytes.
func (r *Response) Size() int64 {
	return int64(len(r.body))
}

// DecodeJSON unmarshals the response body into v.
//
// Example:
//
//	var users []User
//	if err := resp.DecodeJSON(&users); err != nil {
//	    log.Fatal(err)
//	}
func (r *Response) DecodeJSON(v interface{}) error {
	return json.Unmarshal(r.body, v)
}

// Path extracts a value from a JSON body. Both JSONPath-style expressions
// ("$.users[0].name") and gjson paths ("users.0.name") are accepted.
func (r *Response) Path(expr string) (string, error) {
	if len(r.body) == 0 {
		return "", fmt.Errorf("empty response body")
	}
	if expr == "" {
		return "", fmt.Errorf("empty path expression")
	}

	result := gjson.GetBytes(r.body, gjsonPath(expr))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", expr)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// gjsonPath rewrites a JSONPath expression into gjson syntax:
// $.users[0]['name'] becomes users.0.name.
func gjsonPath(expr string) string {
	p := strings.TrimPrefix(expr, "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return "@this"
	}

	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	return strings.TrimPrefix(replacer.Replace(p), ".")
}

// Header returns the first value of the named response header.
func (r *Response) Header(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect returns true if the response status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError returns true if the response status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}
