package http

import (
	"time"

	"github.com/google/uuid"
)

// ExchangeContext records one dispatch for observers. The Dispatcher creates
// it when the exchange starts and fills it in as phases complete; it is not
// kept after Dispatch returns.
//
// A zero ReceiveEnd or FailedAt means the phase has not happened.
type ExchangeContext struct {
	ID        uuid.UUID
	SendStart time.Time

	ReceiveEnd time.Time
	FailedAt   time.Time

	// RequestModel and ResponseModel are opaque references observers may set
	// for each other, such as the value that was serialized into the body.
	RequestModel  interface{}
	ResponseModel interface{}

	ResponseSize int64

	// Items holds metadata attached by observers.
	Items map[string]interface{}

	// FailureHandled is set by an error observer to acknowledge a transport
	// failure. Dispatch then returns without an error.
	FailureHandled bool
}

func newExchangeContext(start time.Time) *ExchangeContext {
	return &ExchangeContext{
		ID:        uuid.New(),
		SendStart: start,
		Items:     make(map[string]interface{}),
	}
}

// Elapsed returns the time from SendStart to whichever of ReceiveEnd or
// FailedAt is set, or zero while the exchange is in flight.
func (xc *ExchangeContext) Elapsed() time.Duration {
	switch {
	case !xc.ReceiveEnd.IsZero():
		return xc.ReceiveEnd.Sub(xc.SendStart)
	case !xc.FailedAt.IsZero():
		return xc.FailedAt.Sub(xc.SendStart)
	}
	return 0
}
