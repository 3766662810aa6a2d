// Package http assembles outbound HTTP requests from incrementally supplied
// pieces and dispatches them.
//
// A RequestSpec collects a base URI, a resource template with {name}
// placeholders, segment substitutions, query parameters, headers,
// authentication and a body. Resolve turns it into an immutable
// ResolvedRequest with a single, correctly escaped URI. A Dispatcher sends
// resolved requests through a Transport and notifies observers before the
// request is sent, after the response arrives and when the transport fails.
//
// Basic Usage:
//
//	spec := http.NewRequestSpec().
//	    SetMethod("GET").
//	    SetBaseURI("https://api.example.com/").
//	    SetResourceURI("users/{id}").
//	    AddURISegment("id", 42).
//	    AddQuery("active", true)
//
//	req, err := spec.Resolve()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(req) // https://api.example.com/users/42?active=true
//
//	d := http.NewDispatcher(http.WithTransport(http.NewHTTPTransport()))
//	resp, err := d.Dispatch(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Status: %d\n", resp.StatusCode)
//	fmt.Printf("TTFB: %v\n", resp.Timing.TimeToFirstByte)
//
// Observers:
//
//	d.OnBeforeSend(func(req *http.ResolvedRequest, xc *http.ExchangeContext) {
//	    xc.Items["tenant"] = "acme"
//	})
//	d.OnError(func(err error, req *http.ResolvedRequest, xc *http.ExchangeContext) {
//	    xc.FailureHandled = true // Dispatch returns (nil, nil)
//	})
//
// Thread Safety:
//
// A RequestSpec belongs to a single goroutine. ResolvedRequest, Dispatcher and
// HTTPTransport are safe for concurrent use.
package http
