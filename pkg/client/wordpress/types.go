package wordpress

import (
	"fmt"
	"strings"
)

// APIPrefix is the fixed WordPress REST path every endpoint is appended to.
const APIPrefix = "/wp-json/wp/v2"

// Method is an HTTP method accepted by the client.
type Method string

// Supported methods.
const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
	MethodPut  Method = "PUT"
)

// ParseMethod converts s (case-insensitive) to a supported Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
	return m, nil
}

// Valid reports whether m is one of GET, POST or PUT.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut:
		return true
	default:
		return false
	}
}

// RequestDescriptor describes one REST call. Endpoint is a path suffix such
// as "/posts" or "/posts/42" and is expected to begin with "/".
//
// For GET the payload becomes query parameters; for POST and PUT it is the
// JSON body. A nil payload sends neither.
type RequestDescriptor struct {
	Endpoint string
	Method   Method
	Payload  map[string]any
}

// ErrorResult is the value returned for upstream HTTP errors.
type ErrorResult struct {
	Error string `json:"error" yaml:"error"`
}

// Response is either the decoded JSON body of a successful call or an
// ErrorResult for a non-success status. Exactly one of Body and Error is
// meaningful; Body may legitimately be nil for a JSON "null" body.
type Response struct {
	StatusCode int
	Body       any
	Error      *ErrorResult
}

// IsError reports whether the upstream answered with an error status.
func (r *Response) IsError() bool {
	return r != nil && r.Error != nil
}

// Value returns what a tool hands back to its caller: the ErrorResult for an
// upstream error, otherwise the body untouched.
func (r *Response) Value() any {
	if r == nil {
		return nil
	}
	if r.Error != nil {
		return r.Error
	}
	return r.Body
}
