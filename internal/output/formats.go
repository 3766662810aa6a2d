package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/reqspec/http"
	"github.com/wesleyorama2/reqspec/internal/metrics"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is the default human-readable text format
	FormatText OutputFormat = "text"
	// FormatJSON outputs in JSON format
	FormatJSON OutputFormat = "json"
	// FormatYAML outputs in YAML format
	FormatYAML OutputFormat = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format '%s', must be one of: text, json, yaml", name)
	}
}

// FormatProvider is an interface for different output formatters
type FormatProvider interface {
	FormatRequest(req *http.ResolvedRequest) string
	FormatResponse(resp *http.Response) string
	FormatExtracted(values []Extracted) string
	FormatSummary(s metrics.Summary) string
}

// HeaderData is a single request header.
type HeaderData struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// RequestData represents the structured data of a resolved request
type RequestData struct {
	Method      string       `json:"method" yaml:"method"`
	URL         string       `json:"url" yaml:"url"`
	Headers     []HeaderData `json:"headers,omitempty" yaml:"headers,omitempty"`
	ContentType string       `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Body        interface{}  `json:"body,omitempty" yaml:"body,omitempty"`
}

// TimingData represents detailed timing information for an HTTP request
type TimingData struct {
	DNSLookup       int64 `json:"dnsLookupMs,omitempty" yaml:"dnsLookupMs,omitempty"`
	TCPConnection   int64 `json:"tcpConnectionMs,omitempty" yaml:"tcpConnectionMs,omitempty"`
	TLSHandshake    int64 `json:"tlsHandshakeMs,omitempty" yaml:"tlsHandshakeMs,omitempty"`
	TimeToFirstByte int64 `json:"timeToFirstByteMs,omitempty" yaml:"timeToFirstByteMs,omitempty"`
	ContentTransfer int64 `json:"contentTransferMs,omitempty" yaml:"contentTransferMs,omitempty"`
	Total           int64 `json:"totalMs" yaml:"totalMs"`
}

// ResponseData represents the structured data of an HTTP response
type ResponseData struct {
	StatusCode    int               `json:"statusCode" yaml:"statusCode"`
	Status        string            `json:"status" yaml:"status"`
	Headers       map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body          interface{}       `json:"body,omitempty" yaml:"body,omitempty"`
	Timing        *TimingData       `json:"timing,omitempty" yaml:"timing,omitempty"`
	ContentLength int64             `json:"contentLength" yaml:"contentLength"`
}

// ExtractData is one extracted value.
type ExtractData struct {
	Name  string `json:"name" yaml:"name"`
	Path  string `json:"path" yaml:"path"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// SummaryData represents latency statistics in milliseconds.
type SummaryData struct {
	Count    int64   `json:"count" yaml:"count"`
	Failures int64   `json:"failures" yaml:"failures"`
	Bytes    int64   `json:"bytes" yaml:"bytes"`
	MinMs    float64 `json:"minMs" yaml:"minMs"`
	MeanMs   float64 `json:"meanMs" yaml:"meanMs"`
	P50Ms    float64 `json:"p50Ms" yaml:"p50Ms"`
	P90Ms    float64 `json:"p90Ms" yaml:"p90Ms"`
	P99Ms    float64 `json:"p99Ms" yaml:"p99Ms"`
	MaxMs    float64 `json:"maxMs" yaml:"maxMs"`
}

// StructuredFormatter formats output as JSON or YAML documents.
type StructuredFormatter struct {
	Format  OutputFormat
	Verbose bool
	Pretty  bool
}

// FormatRequest formats a request as a structured document
func (f *StructuredFormatter) FormatRequest(req *http.ResolvedRequest) string {
	data := RequestData{
		Method: req.Method(),
		URL:    req.String(),
	}
	for _, h := range req.Headers() {
		data.Headers = append(data.Headers, HeaderData{Name: h.Name, Value: h.Value})
	}
	if content := req.Content(); content != nil {
		data.ContentType = content.Type
		data.Body = bodyValue(content.Data)
	}
	return f.marshal("request", data)
}

// FormatResponse formats a response as a structured document
func (f *StructuredFormatter) FormatResponse(resp *http.Response) string {
	headers := make(map[string]string, len(resp.Headers))
	for key, values := range resp.Headers {
		headers[key] = strings.Join(values, ", ")
	}

	data := ResponseData{
		StatusCode:    resp.StatusCode,
		Status:        resp.Status,
		Headers:       headers,
		Body:          bodyValue(resp.Bytes()),
		ContentLength: resp.Size(),
	}
	if f.Verbose {
		t := resp.Timing
		data.Timing = &TimingData{
			DNSLookup:       t.DNSLookupTime.Milliseconds(),
			TCPConnection:   t.TCPConnectTime.Milliseconds(),
			TLSHandshake:    t.TLSHandshakeTime.Milliseconds(),
			TimeToFirstByte: t.TimeToFirstByte.Milliseconds(),
			ContentTransfer: t.ContentTransferTime.Milliseconds(),
			Total:           t.TotalTime.Milliseconds(),
		}
	}
	return f.marshal("response", data)
}

// FormatExtracted formats extracted values as a structured document
func (f *StructuredFormatter) FormatExtracted(values []Extracted) string {
	if len(values) == 0 {
		return ""
	}
	data := make([]ExtractData, 0, len(values))
	for _, v := range values {
		d := ExtractData{Name: v.Name, Path: v.Path, Value: v.Value}
		if v.Err != nil {
			d.Value = ""
			d.Error = v.Err.Error()
		}
		data = append(data, d)
	}
	return f.marshal("extracted", data)
}

// FormatSummary formats latency statistics as a structured document
func (f *StructuredFormatter) FormatSummary(s metrics.Summary) string {
	return f.marshal("summary", SummaryData{
		Count:    s.Count,
		Failures: s.Failures,
		Bytes:    s.Bytes,
		MinMs:    millis(s.Min),
		MeanMs:   millis(s.Mean),
		P50Ms:    millis(s.P50),
		P90Ms:    millis(s.P90),
		P99Ms:    millis(s.P99),
		MaxMs:    millis(s.Max),
	})
}

// marshal wraps v in a single-key document so a stream of outputs stays
// self-describing.
func (f *StructuredFormatter) marshal(kind string, v interface{}) string {
	doc := map[string]interface{}{kind: v}

	if f.Format == FormatYAML {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Sprintf("error: failed to marshal %s: %s\n", kind, err)
		}
		return "---\n" + string(out)
	}

	var out []byte
	var err error
	if f.Pretty {
		out, err = json.MarshalIndent(doc, "", "  ")
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal %s: %s"}`+"\n", kind, err)
	}
	return string(out) + "\n"
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// bodyValue decodes a JSON body, falling back to the raw text.
func bodyValue(data []byte) interface{} {
	if len(data) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return string(data)
	}
	return v
}

// GetFormatter returns the appropriate formatter for the given format
func GetFormatter(format OutputFormat, verbose bool, noColor bool) FormatProvider {
	switch format {
	case FormatJSON, FormatYAML:
		return &StructuredFormatter{Format: format, Verbose: verbose, Pretty: true}
	default:
		return NewFormatter(verbose, noColor)
	}
}
