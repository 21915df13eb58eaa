package wordpress

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/credentials"
)

// capturedRequest records what the fake upstream received.
type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest, *int32) {
	t.Helper()
	captured := &capturedRequest{}
	var calls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		data, _ := io.ReadAll(r.Body)
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		captured.Header = r.Header.Clone()
		captured.Body = data
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured, &calls
}

func testCreds(siteURL string) credentials.Credentials {
	return credentials.Credentials{SiteURL: siteURL, Username: "u", Password: "p"}
}

func TestBasicAuthHeader(t *testing.T) {
	want := "Basic " + base64.StdEncoding.EncodeToString([]byte("u:p"))
	assert.Equal(t, want, BasicAuthHeader("u", "p"))
	assert.Equal(t, "Basic dTpw", BasicAuthHeader("u", "p"))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://blog.example.com/wp-json/wp/v2/posts", BuildURL("https://blog.example.com", "/posts"))
	// No slash normalization
	assert.Equal(t, "https://blog.example.com//wp-json/wp/v2/posts/", BuildURL("https://blog.example.com/", "/posts/"))
}

func TestRequestMissingCredentials(t *testing.T) {
	srv, _, calls := newUpstream(t, http.StatusOK, `{}`)
	client := NewClient()

	tests := []struct {
		name  string
		creds credentials.Credentials
	}{
		{"all empty", credentials.Credentials{}},
		{"missing site url", credentials.Credentials{Username: "u", Password: "p"}},
		{"missing username", credentials.Credentials{SiteURL: srv.URL, Password: "p"}},
		{"missing password", credentials.Credentials{SiteURL: srv.URL, Username: "u"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, tt.creds)
			require.ErrorIs(t, err, ErrMissingCredentials)
			assert.Nil(t, resp)
		})
	}

	assert.Equal(t, int32(0), atomic.LoadInt32(calls), "no request may reach the network")
}

func TestRequestUnsupportedMethodFailsClosed(t *testing.T) {
	srv, _, calls := newUpstream(t, http.StatusOK, `{}`)
	client := NewClient()

	_, err := client.Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: "DELETE"}, testCreds(srv.URL))
	require.ErrorIs(t, err, ErrUnsupportedMethod)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestRequestHTTPErrorIsReturnedAsValue(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusNotFound, "Not Found")
	client := NewClient()

	resp, err := client.Request(context.Background(), RequestDescriptor{Endpoint: "/posts/999", Method: MethodGet}, testCreds(srv.URL))
	require.NoError(t, err)
	require.True(t, resp.IsError())
	assert.Equal(t, "404 Not Found", resp.Error.Error)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	out, err := json.Marshal(resp.Value())
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"404 Not Found"}`, string(out))
}

func TestRequestServerErrorEmbedsBody(t *testing.T) {
	body := `{"code":"rest_cannot_create","message":"Sorry, you are not allowed"}`
	srv, _, _ := newUpstream(t, http.StatusForbidden, body)

	resp, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodPost, Payload: map[string]any{}}, testCreds(srv.URL))
	require.NoError(t, err)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "403 "+body, resp.Error.Error)
}

func TestRequestSuccessPassesBodyThrough(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `{"id": 1, "title": "Hello"}`)

	resp, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts/1", Method: MethodGet}, testCreds(srv.URL))
	require.NoError(t, err)
	require.False(t, resp.IsError())

	out, err := json.Marshal(resp.Value())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"title":"Hello"}`, string(out))

	body, ok := resp.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), body["id"])
	assert.Equal(t, "Hello", body["title"])
}

func TestRequestPreservesLargeNumbers(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `[{"id": 9007199254740993}]`)

	resp, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, testCreds(srv.URL))
	require.NoError(t, err)

	out, err := json.Marshal(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":9007199254740993}]`, string(out))
}

func TestRequestInvalidJSONIsTransportError(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, "<html>not json</html>")

	resp, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, testCreds(srv.URL))
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, IsTransportError(err))
}

func TestRequestTrailingDataIsTransportError(t *testing.T) {
	srv, _, _ := newUpstream(t, http.StatusOK, `{"id":1} {"id":2}`)

	_, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, testCreds(srv.URL))
	assert.True(t, IsTransportError(err))
}

func TestRequestConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	siteURL := srv.URL
	srv.Close()

	resp, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, testCreds(siteURL))
	require.Error(t, err)
	assert.Nil(t, resp)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "GET", te.Method)
	assert.Equal(t, siteURL+"/wp-json/wp/v2/posts", te.URL)
}

func TestRequestTimeoutIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := client.Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodGet}, testCreds(srv.URL))
	assert.True(t, IsTransportError(err))
}

func TestRequestHeaders(t *testing.T) {
	for _, method := range []Method{MethodGet, MethodPost, MethodPut} {
		t.Run(string(method), func(t *testing.T) {
			srv, captured, _ := newUpstream(t, http.StatusOK, `{}`)

			_, err := NewClient(WithUserAgent("test-agent")).Request(context.Background(),
				RequestDescriptor{Endpoint: "/posts", Method: method}, testCreds(srv.URL))
			require.NoError(t, err)

			assert.Equal(t, string(method), captured.Method)
			assert.Equal(t, "/wp-json/wp/v2/posts", captured.Path)
			assert.Equal(t, "Basic "+base64.StdEncoding.EncodeToString([]byte("u:p")), captured.Header.Get("Authorization"))
			assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))
			assert.Equal(t, "test-agent", captured.Header.Get("User-Agent"))
		})
	}
}

func TestRequestGETSendsPayloadAsQuery(t *testing.T) {
	srv, captured, _ := newUpstream(t, http.StatusOK, `[]`)

	_, err := NewClient().Request(context.Background(), RequestDescriptor{
		Endpoint: "/posts",
		Method:   MethodGet,
		Payload:  map[string]any{"per_page": 5, "page": int64(2), "search": "go", "sticky": true},
	}, testCreds(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, []string{"5"}, captured.Query["per_page"])
	assert.Equal(t, []string{"2"}, captured.Query["page"])
	assert.Equal(t, []string{"go"}, captured.Query["search"])
	assert.Equal(t, []string{"true"}, captured.Query["sticky"])
	assert.Empty(t, captured.Body)
}

func TestRequestPUTSendsJSONBody(t *testing.T) {
	srv, captured, _ := newUpstream(t, http.StatusOK, `{"id":3}`)

	_, err := NewClient().Request(context.Background(), RequestDescriptor{
		Endpoint: "/posts/3",
		Method:   MethodPut,
		Payload:  map[string]any{"status": "publish"},
	}, testCreds(srv.URL))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, captured.Method)
	assert.JSONEq(t, `{"status":"publish"}`, string(captured.Body))
	assert.Empty(t, captured.Query)
}

func TestRequestNilPayloadSendsNoBody(t *testing.T) {
	srv, captured, _ := newUpstream(t, http.StatusOK, `{}`)

	_, err := NewClient().Request(context.Background(), RequestDescriptor{Endpoint: "/posts", Method: MethodPost}, testCreds(srv.URL))
	require.NoError(t, err)
	assert.Empty(t, captured.Body)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("post")
	require.NoError(t, err)
	assert.Equal(t, MethodPost, m)

	_, err = ParseMethod("PATCH")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
