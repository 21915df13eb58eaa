// Package tracing provides OpenTelemetry tracing for the WordPress MCP server.
package tracing

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/version"
)

// TracerName identifies spans emitted by this server
const TracerName = version.BinaryName

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64
}

// DefaultConfig returns defaults derived from the OTEL_* environment
func DefaultConfig() Config {
	return Config{
		ServiceName:    version.BinaryName,
		ServiceVersion: version.Version,
		Environment:    getEnvOrDefault("OTEL_ENVIRONMENT", "development"),
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRate:     1.0,
	}
}

// Setup initializes OpenTelemetry tracing and returns a shutdown function
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			attribute.String("environment", config.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if config.OTLPEndpoint != "" {
		target, perr := parseOTLPEndpoint(config.OTLPEndpoint)
		if perr != nil {
			return nil, perr
		}
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpoint(target.host),
			otlptracehttp.WithURLPath(target.urlPath),
		}
		if target.insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
	} else {
		// stdout carries the MCP protocol in stdio mode, so spans go to stderr
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(samplerFor(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func samplerFor(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Tracer returns the named tracer for the server
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// AddToolAttributes adds standard tool attributes to a span
func AddToolAttributes(span trace.Span, toolName, toolset string) {
	span.SetAttributes(
		attribute.String("mcp.tool.name", toolName),
		attribute.String("mcp.toolset", toolset),
	)
}

// AddAPIAttributes adds WordPress REST call attributes to a span
func AddAPIAttributes(span trace.Span, method, endpoint string) {
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("wordpress.endpoint", endpoint),
	)
}

// RecordError records an error on the span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

const tracesPath = "/v1/traces"

type otlpTarget struct {
	host     string
	urlPath  string
	insecure bool
}

// parseOTLPEndpoint accepts either a base URL such as "http://collector:4318"
// (the OTEL_EXPORTER_OTLP_ENDPOINT convention, traces path appended) or a
// bare "host:port", which is sent over plain HTTP.
func parseOTLPEndpoint(endpoint string) (otlpTarget, error) {
	if !strings.Contains(endpoint, "://") {
		return otlpTarget{host: endpoint, urlPath: tracesPath, insecure: true}, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: missing host", endpoint)
	}

	return otlpTarget{
		host:     u.Host,
		urlPath:  path.Join("/", u.Path, tracesPath),
		insecure: u.Scheme == "http",
	}, nil
}
