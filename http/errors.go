package http

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for malformed caller input to a
	// configuration call, such as an empty segment name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMissingURI is returned by Resolve when neither an explicit URI nor a
	// base URI or resource template has been configured.
	ErrMissingURI = errors.New("no URI configured on the request")

	// ErrInvalidURI is returned when a URI string fails to parse at any step of
	// resolution.
	ErrInvalidURI = errors.New("invalid URI")

	// ErrTransport is matched by every *TransportError.
	ErrTransport = errors.New("transport failure")
)

var errNoResponse = errors.New("transport returned no response")

// TransportError wraps a failure raised by a Transport during an exchange.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func invalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func invalidURI(uri string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %q", ErrInvalidURI, uri)
	}
	return fmt.Errorf("%w: %q: %v", ErrInvalidURI, uri, err)
}
