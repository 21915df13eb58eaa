package version

import (
	"fmt"
	"runtime"
)

// BinaryName is the name of the server binary
const BinaryName = "wordpress-mcp-server"

// Build information, overridden at link time via -ldflags "-X".
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	// GoVersion is the Go toolchain the binary was built with
	GoVersion = runtime.Version()

	// Platform is the target OS/architecture pair
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// GetVersionInfo returns a human-readable multi-line version description
func GetVersionInfo() string {
	return fmt.Sprintf(`%s
  Version:    %s
  Git commit: %s
  Built:      %s
  Go version: %s
  Platform:   %s`,
		BinaryName, Version, GitCommit, BuildDate, GoVersion, Platform)
}

// UserAgent returns the User-Agent header value used for upstream requests
func UserAgent() string {
	return fmt.Sprintf("%s/%s", BinaryName, Version)
}
