package wordpress

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials is returned before any network I/O when the site
	// URL, username or password is empty.
	ErrMissingCredentials = errors.New("wordpress credentials are missing: site URL, username and password are required")

	// ErrUnsupportedMethod is returned for request methods other than GET, POST and PUT.
	ErrUnsupportedMethod = errors.New("unsupported request method")
)

// TransportError reports a request that produced no usable response: DNS,
// connection, TLS or timeout failures, and success bodies that are not JSON.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("wordpress %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError returns true if err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
