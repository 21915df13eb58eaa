// Package wordpress is an authenticated client for the WordPress REST API.
package wordpress

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/credentials"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/metrics"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/tracing"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/version"
)

// DefaultTimeout for a single API round trip
const DefaultTimeout = 30 * time.Second

// Client performs single, stateless WordPress REST calls. It holds no
// per-site state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. Zero keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new WordPress REST client
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BasicAuthHeader returns the Authorization header value for username and password.
func BasicAuthHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

// BuildURL joins the site URL, the REST prefix and the endpoint verbatim.
// Slashes are not normalized.
func BuildURL(siteURL, endpoint string) string {
	return siteURL + APIPrefix + endpoint
}

// Request performs one authenticated call.
//
// Upstream statuses >= 400 come back as a Response carrying an ErrorResult and
// a nil error. Missing credentials, unsupported methods and transport
// failures (including a non-JSON success body) are returned as errors.
func (c *Client) Request(ctx context.Context, desc RequestDescriptor, creds credentials.Credentials) (*Response, error) {
	if !creds.Complete() {
		return nil, ErrMissingCredentials
	}
	if !desc.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, desc.Method)
	}

	ctx, span := tracing.StartSpan(ctx, "wordpress.request")
	defer span.End()
	tracing.AddAPIAttributes(span, string(desc.Method), desc.Endpoint)

	target := BuildURL(creds.SiteURL, desc.Endpoint)
	req, err := c.newRequest(ctx, desc, target)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, &TransportError{Method: string(desc.Method), URL: target, Err: err}
	}
	req.Header.Set("Authorization", BasicAuthHeader(creds.Username, creds.Password))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	log := logging.Logger()
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(string(desc.Method), desc.Endpoint, 0, time.Since(start).Seconds())
		log.Warn().
			Str("method", string(desc.Method)).
			Str("endpoint", desc.Endpoint).
			Err(err).
			Msg("WordPress request failed")
		tracing.RecordError(span, err)
		return nil, &TransportError{Method: string(desc.Method), URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	metrics.RecordAPICall(string(desc.Method), desc.Endpoint, resp.StatusCode, elapsed.Seconds())
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if err != nil {
		tracing.RecordError(span, err)
		return nil, &TransportError{Method: string(desc.Method), URL: target, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	log.Debug().
		Str("method", string(desc.Method)).
		Str("endpoint", desc.Endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", elapsed).
		Msg("WordPress request completed")

	if resp.StatusCode >= http.StatusBadRequest {
		return &Response{
			StatusCode: resp.StatusCode,
			Error:      &ErrorResult{Error: fmt.Sprintf("%d %s", resp.StatusCode, string(body))},
		}, nil
	}

	decoded, err := decodeJSON(body)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, &TransportError{Method: string(desc.Method), URL: target, Err: err}
	}

	return &Response{StatusCode: resp.StatusCode, Body: decoded}, nil
}

// newRequest builds the HTTP request, encoding the payload as query
// parameters for GET and as a JSON body otherwise.
func (c *Client) newRequest(ctx context.Context, desc RequestDescriptor, target string) (*http.Request, error) {
	if desc.Method == MethodGet {
		if len(desc.Payload) > 0 {
			u, err := url.Parse(target)
			if err != nil {
				return nil, fmt.Errorf("invalid request URL: %w", err)
			}
			q := u.Query()
			for key, value := range desc.Payload {
				addQueryValue(q, key, value)
			}
			u.RawQuery = q.Encode()
			target = u.String()
		}
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}

	var body io.Reader
	if desc.Payload != nil {
		data, err := json.Marshal(desc.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return http.NewRequestWithContext(ctx, string(desc.Method), target, body)
}

func addQueryValue(q url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
		q.Add(key, "")
	case string:
		q.Add(key, v)
	case bool:
		if v {
			q.Add(key, "true")
		} else {
			q.Add(key, "false")
		}
	case []string:
		for _, item := range v {
			q.Add(key, item)
		}
	case []any:
		for _, item := range v {
			addQueryValue(q, key, item)
		}
	default:
		q.Add(key, fmt.Sprint(v))
	}
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number
// so large IDs survive unchanged.
func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON response: trailing data after top-level value")
	}
	return v, nil
}
