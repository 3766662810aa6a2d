package http

import (
	"context"
	"time"
)

// Dispatcher sends resolved requests through a Transport and notifies
// observers around each exchange. It is safe for concurrent use.
type Dispatcher struct {
	transport Transport
	observers observers
	now       func() time.Time
}

// DispatcherOption is a function that configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// NewDispatcher creates a Dispatcher. Without WithTransport it uses a new
// HTTPTransport from DefaultTransport.
//
// Example:
//
//	d := http.NewDispatcher(
//	    http.WithTransport(http.NewHTTPTransport(http.WithTimeout(5*time.Second))),
//	    http.WithObserver(http.NewLogObserver(logger)),
//	)
//
//	resp, err := d.Send(ctx, http.NewRequestSpecFor("GET", "https://api.example.com/health"))
func NewDispatcher(options ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		now: time.Now,
	}

	for _, option := range options {
		option(d)
	}

	if d.transport == nil {
		d.transport = DefaultTransport()
	}

	return d
}

// WithTransport sets the Transport used for every exchange.
func WithTransport(t Transport) DispatcherOption {
	return func(d *Dispatcher) {
		d.transport = t
	}
}

// WithObserver registers obs for every lifecycle notification.
func WithObserver(obs Observer) DispatcherOption {
	return func(d *Dispatcher) {
		d.observers.addObserver(obs)
	}
}

// WithClock replaces the clock used to stamp ExchangeContext times.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// OnBeforeSend registers fn to run before each request is sent.
func (d *Dispatcher) OnBeforeSend(fn BeforeSendFunc) Subscription {
	return d.observers.addBeforeSend(fn)
}

// OnAfterReceive registers fn to run after each successful exchange.
func (d *Dispatcher) OnAfterReceive(fn AfterReceiveFunc) Subscription {
	return d.observers.addAfterReceive(fn)
}

// OnError registers fn to run when the transport fails.
func (d *Dispatcher) OnError(fn ErrorFunc) Subscription {
	return d.observers.addOnError(fn)
}

// Observe registers every hook of obs. The returned Subscription removes all
// of them at once.
func (d *Dispatcher) Observe(obs Observer) Subscription {
	return d.observers.addObserver(obs)
}

// Unsubscribe removes the callbacks registered under the given subscriptions.
// Unknown subscriptions are ignored.
func (d *Dispatcher) Unsubscribe(subs ...Subscription) {
	d.observers.remove(subs...)
}

// Dispatch performs one exchange for req.
//
// Observers registered with OnBeforeSend run before the transport is called.
// On success the OnAfterReceive observers run and the response is returned.
// On failure the error is wrapped in a *TransportError and passed to the
// OnError observers; it is returned unless one of them set
// ExchangeContext.FailureHandled, in which case Dispatch returns a nil
// response and a nil error.
func (d *Dispatcher) Dispatch(ctx context.Context, req *ResolvedRequest) (*Response, error) {
	if req == nil {
		return nil, invalidArgument("nil request")
	}

	xc := newExchangeContext(d.now())
	d.observers.fireBeforeSend(req, xc)

	resp, err := d.transport.Exchange(ctx, req)
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		xc.FailedAt = d.now()
		failure := &TransportError{Method: req.Method(), URL: req.String(), Err: err}
		d.observers.fireError(failure, req, xc)
		if xc.FailureHandled {
			return nil, nil
		}
		return nil, failure
	}

	xc.ReceiveEnd = d.now()
	xc.ResponseSize = resp.Size()
	d.observers.fireAfterReceive(resp, xc)

	return resp, nil
}

// Send resolves spec and dispatches the result.
func (d *Dispatcher) Send(ctx context.Context, spec *RequestSpec) (*Response, error) {
	req, err := spec.Resolve()
	if err != nil {
		return nil, err
	}
	return d.Dispatch(ctx, req)
}
