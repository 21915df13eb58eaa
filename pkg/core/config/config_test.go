package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Port != 0 {
		t.Errorf("Expected Port to be 0, got %d", config.Port)
	}

	if config.LogLevel != 0 {
		t.Errorf("Expected LogLevel to be 0, got %d", config.LogLevel)
	}

	if config.Output != "json" {
		t.Errorf("Expected Output to be 'json', got '%s'", config.Output)
	}

	if config.RequestTimeout != 30*time.Second {
		t.Errorf("Expected RequestTimeout to be 30s, got %s", config.RequestTimeout)
	}

	if len(config.Toolsets) != 1 || config.Toolsets[0] != "wordpress" {
		t.Errorf("Expected default toolsets [wordpress], got %v", config.Toolsets)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *StaticConfig
		wantErr bool
	}{
		{
			name:    "valid default config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name: "valid port",
			config: &StaticConfig{
				Port:   8080,
				Output: "json",
			},
			wantErr: false,
		},
		{
			name: "invalid port negative",
			config: &StaticConfig{
				Port:   -1,
				Output: "json",
			},
			wantErr: true,
		},
		{
			name: "invalid port too high",
			config: &StaticConfig{
				Port:   65536,
				Output: "json",
			},
			wantErr: true,
		},
		{
			name: "invalid log level too high",
			config: &StaticConfig{
				LogLevel: 10,
				Output:   "json",
			},
			wantErr: true,
		},
		{
			name: "valid output yaml",
			config: &StaticConfig{
				Output: "yaml",
			},
			wantErr: false,
		},
		{
			name: "invalid output",
			config: &StaticConfig{
				Output: "table",
			},
			wantErr: true,
		},
		{
			name: "negative request timeout",
			config: &StaticConfig{
				Output:         "json",
				RequestTimeout: -time.Second,
			},
			wantErr: true,
		},
		{
			name: "valid wordpress config",
			config: &StaticConfig{
				Output:            "json",
				WordPressSiteURL:  "https://blog.example.com",
				WordPressUsername: "admin",
				WordPressPassword: "app-password",
			},
			wantErr: false,
		},
		{
			name: "site URL without credentials is accepted",
			config: &StaticConfig{
				Output:           "json",
				WordPressSiteURL: "https://blog.example.com",
			},
			wantErr: false,
		},
		{
			name: "site URL without scheme",
			config: &StaticConfig{
				Output:           "json",
				WordPressSiteURL: "blog.example.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHasWordPressConfig(t *testing.T) {
	tests := []struct {
		name   string
		config *StaticConfig
		expect bool
	}{
		{
			name:   "no wordpress config",
			config: &StaticConfig{},
			expect: false,
		},
		{
			name: "complete credentials",
			config: &StaticConfig{
				WordPressSiteURL:  "https://blog.example.com",
				WordPressUsername: "admin",
				WordPressPassword: "secret",
			},
			expect: true,
		},
		{
			name: "missing password",
			config: &StaticConfig{
				WordPressSiteURL:  "https://blog.example.com",
				WordPressUsername: "admin",
			},
			expect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.HasWordPressConfig()
			if result != tt.expect {
				t.Errorf("HasWordPressConfig() = %v, want %v", result, tt.expect)
			}
		})
	}
}

func TestGetPortString(t *testing.T) {
	tests := []struct {
		name   string
		config *StaticConfig
		expect string
	}{
		{
			name:   "stdio mode (port 0)",
			config: &StaticConfig{Port: 0},
			expect: "",
		},
		{
			name:   "http mode port 8080",
			config: &StaticConfig{Port: 8080},
			expect: ":8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetPortString()
			if result != tt.expect {
				t.Errorf("GetPortString() = %v, want %v", result, tt.expect)
			}
		})
	}
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv(EnvSiteURL, "https://env.example.com")
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvPassword, "env-pass")

	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)
	if cfg.WordPressSiteURL != "https://env.example.com" {
		t.Errorf("Expected site URL from environment, got '%s'", cfg.WordPressSiteURL)
	}
	if cfg.WordPressUsername != "env-user" {
		t.Errorf("Expected username from environment, got '%s'", cfg.WordPressUsername)
	}
	if cfg.WordPressPassword != "env-pass" {
		t.Errorf("Expected password from environment, got '%s'", cfg.WordPressPassword)
	}
	if cfg.Output != "json" {
		t.Errorf("Expected default output 'json', got '%s'", cfg.Output)
	}
}

func TestFromViperUnsetEnvironment(t *testing.T) {
	t.Setenv(EnvSiteURL, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)
	if cfg.WordPressSiteURL != "" || cfg.WordPressUsername != "" || cfg.WordPressPassword != "" {
		t.Errorf("Expected empty credentials, got %q %q %q",
			cfg.WordPressSiteURL, cfg.WordPressUsername, cfg.WordPressPassword)
	}
}
