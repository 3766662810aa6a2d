package http

import "sync"

// BeforeSendFunc is called with the resolved request before it is sent.
// It may attach metadata to xc but cannot change the request.
type BeforeSendFunc func(req *ResolvedRequest, xc *ExchangeContext)

// AfterReceiveFunc is called after a response has been received.
type AfterReceiveFunc func(resp *Response, xc *ExchangeContext)

// ErrorFunc is called when the transport fails. Setting xc.FailureHandled
// acknowledges the failure.
type ErrorFunc func(err error, req *ResolvedRequest, xc *ExchangeContext)

// Observer receives every lifecycle notification of a Dispatcher.
type Observer interface {
	BeforeSend(req *ResolvedRequest, xc *ExchangeContext)
	AfterReceive(resp *Response, xc *ExchangeContext)
	OnError(err error, req *ResolvedRequest, xc *ExchangeContext)
}

// Subscription identifies registered callbacks so they can be removed.
type Subscription uint64

type subscribed[F any] struct {
	id Subscription
	fn F
}

// observers is a registry of callbacks fired synchronously in registration
// order. Callbacks run outside the lock, so they may register or remove
// other callbacks.
type observers struct {
	mu     sync.RWMutex
	nextID Subscription

	beforeSend   []subscribed[BeforeSendFunc]
	afterReceive []subscribed[AfterReceiveFunc]
	onError      []subscribed[ErrorFunc]
}

func (o *observers) newID() Subscription {
	o.nextID++
	return o.nextID
}

func (o *observers) addBeforeSend(fn BeforeSendFunc) Subscription {
	if fn == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.newID()
	o.beforeSend = append(o.beforeSend, subscribed[BeforeSendFunc]{id, fn})
	return id
}

func (o *observers) addAfterReceive(fn AfterReceiveFunc) Subscription {
	if fn == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.newID()
	o.afterReceive = append(o.afterReceive, subscribed[AfterReceiveFunc]{id, fn})
	return id
}

func (o *observers) addOnError(fn ErrorFunc) Subscription {
	if fn == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.newID()
	o.onError = append(o.onError, subscribed[ErrorFunc]{id, fn})
	return id
}

// addObserver registers all three hooks of obs under a single Subscription.
// A nil observer or callback is ignored and yields the zero Subscription.
func (o *observers) addObserver(obs Observer) Subscription {
	if obs == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	id := o.newID()
	o.beforeSend = append(o.beforeSend, subscribed[BeforeSendFunc]{id, obs.BeforeSend})
	o.afterReceive = append(o.afterReceive, subscribed[AfterReceiveFunc]{id, obs.AfterReceive})
	o.onError = append(o.onError, subscribed[ErrorFunc]{id, obs.OnError})
	return id
}

func (o *observers) remove(ids ...Subscription) {
	drop := make(map[Subscription]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.beforeSend = without(o.beforeSend, drop)
	o.afterReceive = without(o.afterReceive, drop)
	o.onError = without(o.onError, drop)
}

func without[F any](list []subscribed[F], drop map[Subscription]bool) []subscribed[F] {
	kept := make([]subscribed[F], 0, len(list))
	for _, s := range list {
		if !drop[s.id] {
			kept = append(kept, s)
		}
	}
	return kept
}

func (o *observers) fireBeforeSend(req *ResolvedRequest, xc *ExchangeContext) {
	o.mu.RLock()
	list := append([]subscribed[BeforeSendFunc](nil), o.beforeSend...)
	o.mu.RUnlock()

	for _, s := range list {
		s.fn(req, xc)
	}
}

func (o *observers) fireAfterReceive(resp *Response, xc *ExchangeContext) {
	o.mu.RLock()
	list := append([]subscribed[AfterReceiveFunc](nil), o.afterReceive...)
	o.mu.RUnlock()

	for _, s := range list {
		s.fn(resp, xc)
	}
}

func (o *observers) fireError(err error, req *ResolvedRequest, xc *ExchangeContext) {
	o.mu.RLock()
	list := append([]subscribed[ErrorFunc](nil), o.onError...)
	o.mu.RUnlock()

	for _, s := range list {
		s.fn(err, req, xc)
	}
}
