package http

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/config"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
	"github.com/futuretea/wordpress-mcp-server/pkg/server/mcp"
)

const (
	healthEndpoint     = "/healthz"
	readyEndpoint      = "/readyz"
	metricsEndpoint    = "/metrics"
	mcpEndpoint        = "/mcp"
	sseEndpoint        = "/sse"
	sseMessageEndpoint = "/message"

	shutdownTimeout = 10 * time.Second
)

// NewRouter mounts the MCP transports and operational endpoints on a chi router.
func NewRouter(mcpServer *mcp.Server, staticConfig *config.StaticConfig, httpServer *http.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestMiddleware)

	sseServer := mcpServer.ServeSse(staticConfig.SSEBaseURL, httpServer)
	streamableHTTPServer := mcpServer.ServeHTTP(httpServer)

	r.Handle(sseEndpoint, sseServer)
	r.Handle(sseMessageEndpoint, sseServer)
	r.Handle(mcpEndpoint, streamableHTTPServer)
	r.Handle(metricsEndpoint, promhttp.Handler())

	r.Get(healthEndpoint, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get(readyEndpoint, func(w http.ResponseWriter, r *http.Request) {
		if !mcpServer.IsHealthy() {
			http.Error(w, "wordpress credentials not configured", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// Serve runs the HTTP transports until ctx is cancelled or a termination
// signal arrives, then shuts down gracefully.
func Serve(ctx context.Context, mcpServer *mcp.Server, staticConfig *config.StaticConfig) error {
	httpServer := &http.Server{
		Addr: staticConfig.GetPortString(),
	}
	httpServer.Handler = NewRouter(mcpServer, staticConfig, httpServer)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErr := make(chan error, 1)
	go func() {
		logging.Info("Streaming and SSE HTTP servers starting on port %s and paths /mcp, /sse, /message", staticConfig.GetPortString())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-sigChan:
		logging.Info("Received signal %v, initiating graceful shutdown", sig)
		cancel()
	case <-ctx.Done():
		logging.Info("Context cancelled, initiating graceful shutdown")
	case err := <-serverErr:
		logging.Error("HTTP server error: %v", err)
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	logging.Info("Shutting down HTTP server gracefully...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("HTTP server shutdown error: %v", err)
		return err
	}

	logging.Info("HTTP server shutdown complete")
	return nil
}
