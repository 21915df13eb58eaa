package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/config"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/logging"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/metrics"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/tracing"
	"github.com/futuretea/wordpress-mcp-server/pkg/core/version"
	mcphttp "github.com/futuretea/wordpress-mcp-server/pkg/server/http"
	"github.com/futuretea/wordpress-mcp-server/pkg/server/mcp"
)

// IOStreams represents standard input, output, and error streams
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// options holds flags that are not part of the configuration snapshot
type options struct {
	configFile  string
	watchConfig bool
	viper       *viper.Viper
}

// NewMCPServer creates a new cobra command for the WordPress MCP Server
func NewMCPServer(streams IOStreams) *cobra.Command {
	cmd, _ := newCommand(streams)
	return cmd
}

func newCommand(streams IOStreams) (*cobra.Command, *options) {
	def := config.DefaultConfig()
	v := viper.New()
	opts := &options{viper: v}

	cmd := &cobra.Command{
		Use:   version.BinaryName,
		Short: "WordPress MCP Server - Model Context Protocol server for WordPress post management",
		Long: `WordPress MCP Server is a Model Context Protocol (MCP) server that lets MCP
clients create, list and update posts on a WordPress site through the WordPress
REST API, authenticating with an application password.

Credentials are read from WORDPRESS_SITE_URL, WORDPRESS_USERNAME and
WORDPRESS_PASSWORD, a YAML config file, or flags.

This server can run in stdio mode for integration with MCP clients or in HTTP mode
for network access.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), opts, streams)
		},
	}

	// Set output streams for the command
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	// Add flags
	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML configuration file")
	flags.BoolVar(&opts.watchConfig, "watch-config", false, "Reload the configuration file when it changes")
	flags.Int("port", def.Port, "Port to listen on for HTTP mode (0 for stdio mode)")
	flags.Int("log-level", def.LogLevel, "Log level (0-9)")
	flags.String("sse-base-url", def.SSEBaseURL, "Public base URL advertised to SSE clients")
	flags.String("wordpress-site-url", "", "WordPress site URL (env "+config.EnvSiteURL+")")
	flags.String("wordpress-username", "", "WordPress username (env "+config.EnvUsername+")")
	flags.String("wordpress-password", "", "WordPress application password (env "+config.EnvPassword+")")
	flags.Duration("request-timeout", def.RequestTimeout, "Timeout for a single WordPress API request")
	flags.Bool("read-only", def.ReadOnly, "Run in read-only mode")
	flags.String("output", def.Output, "Output format for tool results (json, yaml)")
	flags.StringSlice("toolsets", def.Toolsets, "Comma-separated list of toolsets to enable")
	flags.StringSlice("enabled-tools", def.EnabledTools, "Comma-separated list of tools to enable")
	flags.StringSlice("disabled-tools", def.DisabledTools, "Comma-separated list of tools to disable")

	config.SetDefaults(v)
	for key, flag := range map[string]string{
		config.KeyPort:           "port",
		config.KeyLogLevel:       "log-level",
		config.KeySSEBaseURL:     "sse-base-url",
		config.KeySiteURL:        "wordpress-site-url",
		config.KeyUsername:       "wordpress-username",
		config.KeyPassword:       "wordpress-password",
		config.KeyRequestTimeout: "request-timeout",
		config.KeyReadOnly:       "read-only",
		config.KeyOutput:         "output",
		config.KeyToolsets:       "toolsets",
		config.KeyEnabledTools:   "enabled-tools",
		config.KeyDisabledTools:  "disabled-tools",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	// Add version command
	cmd.AddCommand(newVersionCommand(streams))

	return cmd, opts
}

// newStore loads the layered configuration into a reloadable store
func newStore(opts *options) (*config.Store, error) {
	v := opts.viper
	if opts.configFile != "" {
		v.SetConfigFile(opts.configFile)
		v.SetConfigType("yaml")
	}
	v.SetEnvPrefix("WORDPRESS_MCP")
	v.AutomaticEnv()

	store, err := config.NewStore(v)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return store, nil
}

// runServer runs the MCP server with the given configuration
func runServer(ctx context.Context, opts *options, streams IOStreams) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := newStore(opts)
	if err != nil {
		return err
	}
	cfg := store.Current()

	// stdout carries the MCP protocol in stdio mode
	logging.Initialize(cfg.LogLevel, streams.ErrOut)

	store.OnReload(func(next *config.StaticConfig) {
		logging.Initialize(next.LogLevel, streams.ErrOut)
		metrics.RecordConfigReload(true)
	})
	store.OnReloadError(func(error) {
		metrics.RecordConfigReload(false)
	})

	if opts.watchConfig {
		if err := store.Watch(ctx); err != nil {
			return fmt.Errorf("failed to watch configuration: %w", err)
		}
		logging.Info("Watching %s for changes", store.ConfigFile())
	}

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logging.Warn("Tracing shutdown failed: %v", err)
		}
	}()

	// Create MCP server
	server, err := mcp.NewServer(mcp.Configuration{
		StaticConfig: cfg,
		Store:        store,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Start server based on port configuration
	if cfg.Port == 0 {
		fmt.Fprintf(streams.ErrOut, "Starting WordPress MCP Server in stdio mode\n")
		fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
		return server.ServeStdio()
	}

	fmt.Fprintf(streams.ErrOut, "Starting WordPress MCP Server in HTTP mode on port %d\n", cfg.Port)
	fmt.Fprintf(streams.ErrOut, "Enabled tools: %v\n", server.GetEnabledTools())
	return mcphttp.Serve(ctx, server, cfg)
}

// newVersionCommand creates the version command
func newVersionCommand(streams IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(streams.Out, "%s\n", version.GetVersionInfo())
		},
	}

	// Set output streams for the command
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	return cmd
}
