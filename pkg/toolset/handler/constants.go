package handler

import "errors"

// Format constants
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Parameter name constants
const (
	ParamFormat  = "format"
	ParamTitle   = "title"
	ParamContent = "content"
	ParamStatus  = "status"
	ParamPostID  = "post_id"
	ParamPerPage = "per_page"
	ParamPage    = "page"

	// Injected by the server from its configuration, never supplied by callers
	ParamReadOnly = "readOnly"
)

// Error definitions
var (
	ErrWordPressNotConfigured = errors.New("wordpress client not configured")
	ErrInvalidFormat          = errors.New("invalid output format")
	ErrMissingParameter       = errors.New("missing required parameter")
	ErrInvalidParameter       = errors.New("invalid parameter")
	ErrReadOnlyMode           = errors.New("operation not allowed: server is running in read-only mode")
)
