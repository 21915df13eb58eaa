package mcp

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/futuretea/wordpress-mcp-server/pkg/client/wordpress"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/config"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/credentials"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/metrics"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/tracing"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/version"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset"
	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
	wordpressToolset "github.com/futuretea/wordpress-mcp-server/pkg/toolset/wordpress"
)

// Configuration wraps the static configuration with additional runtime components
type Configuration struct {
	*config.StaticConfig

	// Store supplies live configuration (credentials, read-only, output).
	// When nil, a static store around StaticConfig is used.
	Store *config.Store

	// HTTPClient overrides the client used for WordPress calls
	HTTPClient *http.Client

	// Resolver overrides where credentials come from. Defaults to the Store.
	Resolver credentials.Resolver
}

// Server represents the MCP server
type Server struct {
	configuration *Configuration
	store         *config.Store
	server        *server.MCPServer
	enabledTools  []string
	resolver      credentials.Resolver
	postService   *wordpress.PostService
}

// NewServer creates a new MCP server with the given configuration
func NewServer(configuration Configuration) (*Server, error) {
	// Note: Logging is initialized in root.go before calling NewServer
	// to properly handle stdio vs HTTP/SSE mode

	if configuration.StaticConfig == nil && configuration.Store == nil {
		configuration.StaticConfig = config.DefaultConfig()
	}
	store := configuration.Store
	if store == nil {
		store = config.NewStaticStore(configuration.StaticConfig)
	}
	if configuration.StaticConfig == nil {
		configuration.StaticConfig = store.Current()
	}

	var serverOptions []server.ServerOption

	// Configure server capabilities
	serverOptions = append(serverOptions,
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	client := wordpress.NewClient(
		wordpress.WithHTTPClient(configuration.HTTPClient),
		wordpress.WithTimeout(store.Current().RequestTimeout),
	)
	resolver := configuration.Resolver
	if resolver == nil {
		resolver = &credentials.StoreResolver{Store: store}
	}
	postService := wordpress.NewPostService(client, resolver)

	if !resolver.Resolve().Complete() {
		logging.Warn("WordPress credentials are incomplete; tool calls will fail until %s, %s and %s are set",
			config.EnvSiteURL, config.EnvUsername, config.EnvPassword)
	}

	s := &Server{
		configuration: &configuration,
		store:         store,
		resolver:      resolver,
		server:        server.NewMCPServer(version.BinaryName, version.Version, serverOptions...),
		postService:   postService,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, err
	}

	return s, nil
}

// registerTools registers all available tools based on configuration
func (s *Server) registerTools() error {
	availableToolsets := map[string]toolset.Toolset{
		"wordpress": &wordpressToolset.Toolset{},
	}

	// Determine which toolsets to enable
	enabledToolsets := make([]toolset.Toolset, 0)
	if len(s.configuration.Toolsets) > 0 {
		for _, toolsetName := range s.configuration.Toolsets {
			if ts, exists := availableToolsets[toolsetName]; exists {
				enabledToolsets = append(enabledToolsets, ts)
			} else {
				logging.Warn("Unknown toolset %q ignored", toolsetName)
			}
		}
	} else {
		for _, ts := range availableToolsets {
			enabledToolsets = append(enabledToolsets, ts)
		}
	}

	for _, ts := range enabledToolsets {
		for _, tool := range ts.GetTools(s.postService) {
			if s.shouldEnableTool(tool.Tool.Name) {
				configuredTool := s.configureTool(tool)
				if err := s.registerTool(ts.GetName(), configuredTool); err != nil {
					return fmt.Errorf("failed to register tool %s: %w", tool.Tool.Name, err)
				}
			}
		}
	}

	logging.Info("MCP server initialized with %d tools", len(s.enabledTools))
	return nil
}

// shouldEnableTool determines if a tool should be enabled based on configuration
func (s *Server) shouldEnableTool(toolName string) bool {
	if slices.Contains(s.configuration.DisabledTools, toolName) {
		return false
	}

	// If enabled tools are specified and this tool is not in the list, disable it
	if len(s.configuration.EnabledTools) > 0 {
		return slices.Contains(s.configuration.EnabledTools, toolName)
	}

	return true
}

// configureTool creates a configured tool handler that reads the live
// configuration on every call
func (s *Server) configureTool(tool toolset.ServerTool) toolset.ServerTool {
	return toolset.ServerTool{
		Tool:        tool.Tool,
		Annotations: tool.Annotations,
		Handler: func(ctx context.Context, client interface{}, params map[string]interface{}) (string, error) {
			current := s.store.Current()

			// Inject default output format if not specified
			if _, hasFormat := params[handler.ParamFormat]; !hasFormat && current.Output != "" {
				params[handler.ParamFormat] = current.Output
			}

			// Injected last so callers cannot override it
			delete(params, handler.ParamReadOnly)
			if current.ReadOnly {
				params[handler.ParamReadOnly] = true
			}

			return tool.Handler(ctx, client, params)
		},
	}
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(toolsetName string, tool toolset.ServerTool) error {
	toolHandler := server.ToolHandlerFunc(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Arguments may carry post content; log names only
		logging.Debug("Tool %s called", tool.Tool.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+tool.Tool.Name)
		defer span.End()
		tracing.AddToolAttributes(span, tool.Tool.Name, toolsetName)

		metrics.ToolCallsInFlight.WithLabelValues(tool.Tool.Name).Inc()
		defer metrics.ToolCallsInFlight.WithLabelValues(tool.Tool.Name).Dec()
		start := time.Now()

		params := make(map[string]interface{})
		for key, value := range request.GetArguments() {
			params[key] = value
		}

		result, err := tool.Handler(ctx, s.postService, params)
		metrics.RecordToolCall(tool.Tool.Name, time.Since(start).Seconds(), err == nil)
		if err != nil {
			tracing.RecordError(span, err)
			logging.Warn("Tool %s failed: %v", tool.Tool.Name, err)
		}
		return NewTextResult(result, err), nil
	})

	mcpTool := tool.Tool
	mcpTool.Annotations.ReadOnlyHint = tool.Annotations.ReadOnlyHint
	mcpTool.Annotations.DestructiveHint = tool.Annotations.DestructiveHint
	mcpTool.Annotations.OpenWorldHint = tool.Annotations.RequiresWordPress

	s.server.AddTool(mcpTool, toolHandler)
	s.enabledTools = append(s.enabledTools, tool.Tool.Name)

	logging.Info("Registered tool: %s", tool.Tool.Name)
	return nil
}

// ServeStdio starts the MCP server in stdio mode
func (s *Server) ServeStdio() error {
	logging.Info("Starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeSse starts the MCP server in SSE mode
func (s *Server) ServeSse(baseURL string, httpServer *http.Server) *server.SSEServer {
	logging.Info("Starting MCP server in SSE mode")

	options := make([]server.SSEOption, 0)
	options = append(options, server.WithHTTPServer(httpServer))

	if baseURL != "" {
		options = append(options, server.WithBaseURL(baseURL))
	}

	return server.NewSSEServer(s.server, options...)
}

// ServeHTTP starts the MCP server in HTTP mode
func (s *Server) ServeHTTP(httpServer *http.Server) *server.StreamableHTTPServer {
	logging.Info("Starting MCP server in HTTP mode")

	options := []server.StreamableHTTPOption{
		server.WithStreamableHTTPServer(httpServer),
		server.WithStateLess(true),
	}

	return server.NewStreamableHTTPServer(s.server, options...)
}

// GetEnabledTools returns the list of enabled tools
func (s *Server) GetEnabledTools() []string {
	return s.enabledTools
}

// IsHealthy reports whether complete WordPress credentials are available
func (s *Server) IsHealthy() bool {
	return s.resolver.Resolve().Complete()
}

// Close cleans up the server resources
func (s *Server) Close() {
	logging.Info("Closing MCP server")
	// Nothing to clean up for now
}

// NewTextResult creates a standardized text result for tool responses
func NewTextResult(content string, err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				mcp.TextContent{
					Type: "text",
					Text: err.Error(),
				},
			},
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: content,
			},
		},
	}
}
