package http

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// Transport performs one exchange for a resolved request.
type Transport interface {
	Exchange(ctx context.Context, req *ResolvedRequest) (*Response, error)
}

// HTTPTransport is a Transport backed by a *net/http.Client. It records
// per-phase timing on every response. An HTTPTransport is safe for concurrent
// use and can be shared between dispatchers.
type HTTPTransport struct {
	httpClient *http.Client
}

// TransportOption is a function that configures an HTTPTransport.
type TransportOption func(*HTTPTransport)

// NewHTTPTransport creates an HTTPTransport with the given options.
// The default timeout is 30 seconds.
//
// Example:
//
//	transport := http.NewHTTPTransport(
//	    http.WithTimeout(10*time.Second),
//	)
func NewHTTPTransport(options ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, option := range options {
		option(t)
	}

	return t
}

// DefaultTransport returns a new HTTPTransport with default settings. Every
// call constructs a separate transport; share the returned value to reuse
// connections.
func DefaultTransport() *HTTPTransport {
	return NewHTTPTransport()
}

// WithTimeout sets the timeout for every exchange.
func WithTimeout(timeout time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom *http.Client.
// Use this for advanced configuration like custom transports or TLS settings.
func WithHTTPClient(httpClient *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification.
// WARNING: This should only be used for testing purposes.
func WithInsecureSkipVerify() TransportOption {
	return func(t *HTTPTransport) {
		t.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// Exchange sends req and reads the whole response body.
func (t *HTTPTransport) Exchange(ctx context.Context, req *ResolvedRequest) (*Response, error) {
	httpReq, err := req.NewHTTPRequest(ctx)
	if err != nil {
		return nil, err
	}

	timing := TimingInfo{
		StartTime: time.Now(),
	}

	var dnsStart, connectStart, tlsHandshakeStart time.Time
	// Time to first byte is measured from the end of the last completed phase.
	lastPhaseEnd := timing.StartTime

	trace := &httptrace.ClientTrace{
		DNSStart: func(httptrace.DNSStartInfo) {
			dnsStart = time.Now()
		},
		DNSDone: func(httptrace.DNSDoneInfo) {
			lastPhaseEnd = time.Now()
			timing.DNSLookupTime = lastPhaseEnd.Sub(dnsStart)
		},
		ConnectStart: func(network, addr string) {
			connectStart = time.Now()
		},
		ConnectDone: func(network, addr string, err error) {
			if err == nil {
				lastPhaseEnd = time.Now()
				timing.TCPConnectTime = lastPhaseEnd.Sub(connectStart)
			}
		},
		TLSHandshakeStart: func() {
			tlsHandshakeStart = time.Now()
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			if err == nil {
				lastPhaseEnd = time.Now()
				timing.TLSHandshakeTime = lastPhaseEnd.Sub(tlsHandshakeStart)
			}
		},
		GotFirstResponseByte: func() {
			timing.TimeToFirstByte = time.Since(lastPhaseEnd)
		},
	}

	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace))

	httpResp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	transferStart := time.Now()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	timing.ContentTransferTime = time.Since(transferStart)
	timing.TotalTime = time.Since(timing.StartTime)

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Timing:     timing,
		body:       body,
	}, nil
}
