package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variables the WordPress credentials are read from.
const (
	EnvSiteURL  = "WORDPRESS_SITE_URL"
	EnvUsername = "WORDPRESS_USERNAME"
	EnvPassword = "WORDPRESS_PASSWORD"
)

// Configuration keys, shared by the YAML file, viper and the CLI flags.
const (
	KeyPort           = "port"
	KeyLogLevel       = "log_level"
	KeySSEBaseURL     = "sse_base_url"
	KeySiteURL        = "wordpress_site_url"
	KeyUsername       = "wordpress_username"
	KeyPassword       = "wordpress_password"
	KeyRequestTimeout = "request_timeout"
	KeyReadOnly       = "read_only"
	KeyOutput         = "output"
	KeyToolsets       = "toolsets"
	KeyEnabledTools   = "enabled_tools"
	KeyDisabledTools  = "disabled_tools"
)

// DefaultRequestTimeout bounds a single WordPress API round trip
const DefaultRequestTimeout = 30 * time.Second

// StaticConfig represents the static configuration for the WordPress MCP Server
type StaticConfig struct {
	// Server configuration
	Port       int    `yaml:"port"`
	SSEBaseURL string `yaml:"sse_base_url"`

	// Logging configuration
	LogLevel int `yaml:"log_level"`

	// WordPress configuration
	WordPressSiteURL  string        `yaml:"wordpress_site_url"`
	WordPressUsername string        `yaml:"wordpress_username"`
	WordPressPassword string        `yaml:"wordpress_password"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`

	// Security configuration
	ReadOnly bool `yaml:"read_only"`

	// Output configuration
	Output string `yaml:"output"`

	// Toolset configuration
	Toolsets      []string `yaml:"toolsets"`
	EnabledTools  []string `yaml:"enabled_tools"`
	DisabledTools []string `yaml:"disabled_tools"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *StaticConfig {
	return &StaticConfig{
		Port:           0, // 0 means stdio mode
		LogLevel:       0,
		Output:         "json",
		RequestTimeout: DefaultRequestTimeout,
		Toolsets:       []string{"wordpress"},
		ReadOnly:       false,
	}
}

// SetDefaults registers DefaultConfig values and the credential environment
// bindings on v.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault(KeyPort, def.Port)
	v.SetDefault(KeyLogLevel, def.LogLevel)
	v.SetDefault(KeyOutput, def.Output)
	v.SetDefault(KeyRequestTimeout, def.RequestTimeout)
	v.SetDefault(KeyToolsets, def.Toolsets)
	v.SetDefault(KeyReadOnly, def.ReadOnly)

	_ = v.BindEnv(KeySiteURL, EnvSiteURL)
	_ = v.BindEnv(KeyUsername, EnvUsername)
	_ = v.BindEnv(KeyPassword, EnvPassword)
}

// FromViper builds a StaticConfig from the merged flag, environment, file and
// default layers held by v.
func FromViper(v *viper.Viper) *StaticConfig {
	return &StaticConfig{
		Port:              v.GetInt(KeyPort),
		SSEBaseURL:        v.GetString(KeySSEBaseURL),
		LogLevel:          v.GetInt(KeyLogLevel),
		WordPressSiteURL:  v.GetString(KeySiteURL),
		WordPressUsername: v.GetString(KeyUsername),
		WordPressPassword: v.GetString(KeyPassword),
		RequestTimeout:    v.GetDuration(KeyRequestTimeout),
		ReadOnly:          v.GetBool(KeyReadOnly),
		Output:            v.GetString(KeyOutput),
		Toolsets:          v.GetStringSlice(KeyToolsets),
		EnabledTools:      v.GetStringSlice(KeyEnabledTools),
		DisabledTools:     v.GetStringSlice(KeyDisabledTools),
	}
}

// Validate validates the configuration
func (c *StaticConfig) Validate() error {
	// Validate port
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535, got %d", c.Port)
	}

	// Validate log level
	if c.LogLevel < 0 || c.LogLevel > 9 {
		return fmt.Errorf("log_level must be between 0 and 9, got %d", c.LogLevel)
	}

	// Validate output
	validOutputs := map[string]bool{
		"json": true,
		"yaml": true,
	}
	if !validOutputs[strings.ToLower(c.Output)] {
		return fmt.Errorf("output must be one of: json, yaml, got %s", c.Output)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative, got %s", c.RequestTimeout)
	}

	// Missing credentials are reported per request, only the URL shape is checked here.
	if c.WordPressSiteURL != "" {
		if !strings.HasPrefix(c.WordPressSiteURL, "http://") && !strings.HasPrefix(c.WordPressSiteURL, "https://") {
			return fmt.Errorf("wordpress_site_url must start with http:// or https://, got %s", c.WordPressSiteURL)
		}
	}

	return nil
}

// HasWordPressConfig returns true if all WordPress credentials are present
func (c *StaticConfig) HasWordPressConfig() bool {
	return c.WordPressSiteURL != "" && c.WordPressUsername != "" && c.WordPressPassword != ""
}

// GetPortString returns the listen address for HTTP mode, or "" in stdio mode
func (c *StaticConfig) GetPortString() string {
	if c.Port == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.Port)
}
