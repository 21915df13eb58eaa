// Package credentials resolves the WordPress site URL and login used for
// every API request.
package credentials

import (
	"os"

	"github.com/futuretea/wordpress-mcp-server/pkg/core/config"
)

// Credentials identify a WordPress site and the account used to call it.
type Credentials struct {
	SiteURL  string
	Username string
	Password string
}

// Complete reports whether every field is non-empty.
func (c Credentials) Complete() bool {
	return c.SiteURL != "" && c.Username != "" && c.Password != ""
}

// Resolver produces credentials. Implementations must not cache: each call
// reflects the configuration active at that moment.
type Resolver interface {
	Resolve() Credentials
}

// ResolverFunc adapts a plain function to Resolver.
type ResolverFunc func() Credentials

// Resolve calls f.
func (f ResolverFunc) Resolve() Credentials {
	return f()
}

// StoreResolver reads credentials from the active config.Store snapshot.
type StoreResolver struct {
	Store *config.Store
}

var _ Resolver = (*StoreResolver)(nil)

// Resolve returns the credentials held by the current snapshot.
func (r *StoreResolver) Resolve() Credentials {
	if r == nil || r.Store == nil {
		return Credentials{}
	}
	cfg := r.Store.Current()
	if cfg == nil {
		return Credentials{}
	}
	return Credentials{
		SiteURL:  cfg.WordPressSiteURL,
		Username: cfg.WordPressUsername,
		Password: cfg.WordPressPassword,
	}
}

// EnvResolver reads credentials straight from environment variables.
type EnvResolver struct {
	// LookupEnv defaults to os.LookupEnv
	LookupEnv func(key string) (string, bool)
}

var _ Resolver = (*EnvResolver)(nil)

// Resolve reads WORDPRESS_SITE_URL, WORDPRESS_USERNAME and WORDPRESS_PASSWORD.
// Unset variables resolve to "".
func (r *EnvResolver) Resolve() Credentials {
	lookup := os.LookupEnv
	if r != nil && r.LookupEnv != nil {
		lookup = r.LookupEnv
	}
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}
	return Credentials{
		SiteURL:  get(config.EnvSiteURL),
		Username: get(config.EnvUsername),
		Password: get(config.EnvPassword),
	}
}
