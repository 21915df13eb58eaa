package http

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/metrics"
)

const (
	requestIDHeader = "X-Request-ID"

	// unmatchedRoute labels requests that no route handled
	unmatchedRoute = "unmatched"
)

// routeLabel returns the matched chi route pattern, so metrics stay bounded
// no matter which paths clients request.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return unmatchedRoute
}

// RequestMiddleware tags each request with an ID, logs it and records metrics.
// Health checks are logged at debug level only.
func RequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		lrw := &loggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, routeLabel(r), lrw.statusCode, duration.Seconds())

		if r.URL.Path == healthEndpoint || r.URL.Path == readyEndpoint {
			logging.Debug("%s %s %d %s [%s]", r.Method, r.URL.Path, lrw.statusCode, duration, requestID)
			return
		}
		logging.Info("%s %s %d %s [%s]", r.Method, r.URL.Path, lrw.statusCode, duration, requestID)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode    int
	headerWritten bool
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	if lrw.headerWritten {
		return
	}
	lrw.statusCode = code
	lrw.headerWritten = true
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	lrw.headerWritten = true
	return lrw.ResponseWriter.Write(b)
}

// Flush keeps SSE streaming working through the wrapper.
func (lrw *loggingResponseWriter) Flush() {
	if flusher, ok := lrw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (lrw *loggingResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := lrw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}
