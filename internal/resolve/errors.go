package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyHostname is returned when a request has an empty hostname.
	ErrEmptyHostname = errors.New("empty hostname")
	// ErrEmptyPort is returned when a request has an empty port.
	ErrEmptyPort = errors.New("empty port")
	// ErrInvalidPort is returned when a request's port is not a decimal
	// number in the 0-65535 range. Service names are not looked up.
	ErrInvalidPort = errors.New("invalid port")
)

// Local failure codes used when no nameserver produced an RCODE.
// They are negative so they can never collide with a DNS RCODE.
const (
	// CodeTransport marks a failure reaching any resolver.
	CodeTransport = -1
	// CodeInternal marks a failure inside the lookup itself.
	CodeInternal = -2
)

// LookupError reports a failed resolution. Code is the DNS RCODE when a
// nameserver answered with a failure, or one of the negative local codes;
// it is never zero.
type LookupError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup failed (code %d): %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause, if any.
func (e *LookupError) Unwrap() error {
	return e.Err
}
