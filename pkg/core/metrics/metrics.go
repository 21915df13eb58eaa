// Package metrics provides Prometheus metrics for the WordPress MCP server.
// It tracks tool calls, WordPress API round trips and HTTP transport traffic.
package metrics

import (
	"regexp"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const Namespace = "wordpress_mcp"

var (
	// ToolCallsTotal counts MCP tool calls by tool name and status
	ToolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tool_calls_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// ToolCallDuration measures tool call latency distribution
	ToolCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "tool_call_duration_seconds",
		Help:      "Tool call latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// ToolCallsInFlight tracks currently executing tool calls
	ToolCallsInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "tool_calls_in_flight",
		Help:      "Number of tool calls currently being processed",
	}, []string{"tool"})

	// APIRequestsTotal counts WordPress REST API requests
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "api_requests_total",
		Help:      "Total WordPress REST API requests by method, endpoint and status code",
	}, []string{"method", "endpoint", "code"})

	// APILatency measures WordPress REST API latency
	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "api_latency_seconds",
		Help:      "WordPress REST API call latency by method and endpoint",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	// HTTPRequestsTotal counts HTTP transport requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method and status",
	}, []string{"method", "status"})

	// HTTPRequestDuration measures HTTP request latency
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency distribution",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "route"})

	// ConfigReloads counts configuration reloads by result
	ConfigReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "config_reloads_total",
		Help:      "Configuration reloads by result",
	}, []string{"result"})
)

var numericSegment = regexp.MustCompile(`/\d+`)

// EndpointLabel collapses numeric path segments so per-post endpoints share
// one series: "/posts/42" becomes "/posts/{id}".
func EndpointLabel(endpoint string) string {
	return numericSegment.ReplaceAllString(endpoint, "/{id}")
}

// RecordToolCall records a completed tool call with its duration and status
func RecordToolCall(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	ToolCallsTotal.WithLabelValues(tool, status).Inc()
	ToolCallDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a WordPress API round trip. code is 0 when no
// response was received.
func RecordAPICall(method, endpoint string, code int, duration float64) {
	label := EndpointLabel(endpoint)
	codeLabel := "transport_error"
	if code > 0 {
		codeLabel = strconv.Itoa(code)
	}
	APIRequestsTotal.WithLabelValues(method, label, codeLabel).Inc()
	APILatency.WithLabelValues(method, label).Observe(duration)
}

// RecordHTTPRequest records an HTTP transport request. route must be a
// route pattern, never a raw request path.
func RecordHTTPRequest(method, route string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordConfigReload records a configuration reload attempt
func RecordConfigReload(success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	ConfigReloads.WithLabelValues(result).Inc()
}
