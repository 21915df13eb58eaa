package paramutil

import (
	"fmt"
	"math"

	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
)

// ExtractPresentString extracts a required string parameter that may be empty.
// Returns ErrMissingParameter only if the parameter is absent or not a string.
func ExtractPresentString(params map[string]interface{}, key string) (string, error) {
	if v, ok := params[key].(string); ok {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", handler.ErrMissingParameter, key)
}

// ExtractOptionalStringWithDefault extracts an optional string parameter with a default value.
// Returns defaultValue if the parameter is missing or empty.
func ExtractOptionalStringWithDefault(params map[string]interface{}, key, defaultValue string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return defaultValue
}

// ExtractNonEmptyString returns a pointer to the parameter value, or nil when
// the parameter is missing or the empty string.
func ExtractNonEmptyString(params map[string]interface{}, key string) *string {
	if v, ok := params[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// ExtractBool extracts a boolean parameter with a default value
func ExtractBool(params map[string]interface{}, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}

// maxExactInt is the largest magnitude a float64 holds without losing integer precision.
const maxExactInt = 1 << 53

// ExtractOptionalInt64 extracts an optional int64 parameter.
// JSON numbers arrive as float64; fractional or out-of-range values are
// rejected by returning nil.
func ExtractOptionalInt64(params map[string]interface{}, key string) *int64 {
	switch v := params[key].(type) {
	case float64:
		if v != math.Trunc(v) || math.Abs(v) > maxExactInt {
			return nil
		}
		val := int64(v)
		return &val
	case int64:
		return &v
	case int:
		val := int64(v)
		return &val
	}
	return nil
}

// ExtractInt64 extracts an optional integer parameter, returning defaultValue
// only when the parameter is absent. Explicit values are returned unchanged.
// Returns ErrInvalidParameter if the value is not an integer.
func ExtractInt64(params map[string]interface{}, key string, defaultValue int64) (int64, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return defaultValue, nil
	}
	v := ExtractOptionalInt64(params, key)
	if v == nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", handler.ErrInvalidParameter, key, raw)
	}
	return *v, nil
}

// ExtractRequiredInt64 extracts a required integer parameter.
// Returns ErrMissingParameter if it is absent and ErrInvalidParameter if it is not an integer.
func ExtractRequiredInt64(params map[string]interface{}, key string) (int64, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s", handler.ErrMissingParameter, key)
	}
	return ExtractInt64(params, key, 0)
}

// ExtractRequiredID extracts a required resource ID, which must be a positive integer.
func ExtractRequiredID(params map[string]interface{}, key string) (int64, error) {
	id, err := ExtractRequiredInt64(params, key)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %d", handler.ErrInvalidParameter, key, id)
	}
	return id, nil
}

// ExtractFormat extracts the format parameter with "json" as default.
func ExtractFormat(params map[string]interface{}) string {
	return ExtractOptionalStringWithDefault(params, handler.ParamFormat, handler.FormatJSON)
}

// ExtractAndValidateFormat extracts format parameter and validates it.
// Returns validated format or error if format is invalid.
func ExtractAndValidateFormat(params map[string]interface{}) (string, error) {
	format := ExtractFormat(params)
	if err := handler.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// CheckWritable returns ErrReadOnlyMode when the server injected the read-only flag.
func CheckWritable(params map[string]interface{}) error {
	if ExtractBool(params, handler.ParamReadOnly, false) {
		return handler.ErrReadOnlyMode
	}
	return nil
}
