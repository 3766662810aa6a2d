package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/wesleyorama2/reqspec/http"
	"github.com/wesleyorama2/reqspec/internal/metrics"
)

// Extracted is one value pulled out of a response body with a JSON path.
type Extracted struct {
	Name  string
	Path  string
	Value string
	Err   error
}

// Formatter renders requests and responses as human-readable text.
type Formatter struct {
	Verbose bool
	NoColor bool
	Colors  *ColorScheme
}

// NewFormatter creates a new formatter with the given options
func NewFormatter(verbose, noColor bool) *Formatter {
	colors := DefaultColorScheme()
	if noColor {
		colors = NoColorScheme()
	}
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
		Colors:  colors,
	}
}

// FormatRequest formats a resolved request for display
func (f *Formatter) FormatRequest(req *http.ResolvedRequest) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.Colors.Method.Sprint(req.Method()),
		f.Colors.URL.Sprint(req.String())))

	headers := req.Headers()
	if f.Verbose || len(headers) > 0 {
		buf.WriteString("  Headers:\n")
		for _, h := range headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n",
				f.Colors.HeaderKey.Sprint(h.Name),
				f.Colors.HeaderValue.Sprint(h.Value)))
		}
	}

	if content := req.Content(); content != nil {
		buf.WriteString(fmt.Sprintf("  Body (%s, %d bytes):\n", content.Type, content.Len()))
		buf.WriteString(formatJSONString(string(content.Data)))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatResponse formats an HTTP response for display
func (f *Formatter) FormatResponse(resp *http.Response) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		f.Colors.Status(resp.StatusCode).Sprint(resp.Status),
		resp.Timing.TotalTime.Milliseconds()))

	if f.Verbose {
		t := resp.Timing
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", t.DNSLookupTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", t.TCPConnectTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", t.TLSHandshakeTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", t.TimeToFirstByte.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", t.ContentTransferTime.Milliseconds()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", t.TotalTime.Milliseconds()))

		buf.WriteString("  Headers:\n")
		keys := make([]string, 0, len(resp.Headers))
		for key := range resp.Headers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, value := range resp.Headers[key] {
				buf.WriteString(fmt.Sprintf("    %s: %s\n",
					f.Colors.HeaderKey.Sprint(key),
					f.Colors.HeaderValue.Sprint(value)))
			}
		}
	}

	if body := resp.Text(); body != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(body))
		buf.WriteString("\n")
	}

	return buf.String()
}

// FormatExtracted formats values extracted from a response body.
func (f *Formatter) FormatExtracted(values []Extracted) string {
	if len(values) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(f.Colors.Label.Sprint("  Extracted:") + "\n")
	for _, v := range values {
		if v.Err != nil {
			buf.WriteString(fmt.Sprintf("    %s %s (%s): %s\n",
				ErrorIcon(f.NoColor), v.Name, v.Path, f.Colors.Error.Sprint(v.Err)))
			continue
		}
		buf.WriteString(fmt.Sprintf("    %s %s = %s\n",
			SuccessIcon(f.NoColor), v.Name, f.Colors.Highlight.Sprint(v.Value)))
	}
	return buf.String()
}

// FormatSummary formats latency statistics for repeated exchanges.
func (f *Formatter) FormatSummary(s metrics.Summary) string {
	var buf strings.Builder

	buf.WriteString(fmt.Sprintf("Σ SUMMARY: %d succeeded, %d failed, %d bytes received\n",
		s.Count, s.Failures, s.Bytes))
	if s.Count == 0 {
		return buf.String()
	}

	buf.WriteString(fmt.Sprintf("  Latency: min=%s mean=%s p50=%s p90=%s p99=%s max=%s\n",
		roundDuration(s.Min), roundDuration(s.Mean),
		roundDuration(s.P50), roundDuration(s.P90), roundDuration(s.P99),
		roundDuration(s.Max)))
	return buf.String()
}

func roundDuration(d time.Duration) time.Duration {
	if d >= time.Second {
		return d.Round(time.Millisecond)
	}
	return d.Round(time.Microsecond)
}

// formatJSONString attempts to pretty-print a JSON string
func formatJSONString(s string) string {
	var prettyJSON bytes.Buffer
	err := json.Indent(&prettyJSON, []byte(s), "  ", "  ")
	if err != nil {
		return s
	}
	return "  " + prettyJSON.String()
}
