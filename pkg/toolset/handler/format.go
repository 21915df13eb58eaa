package handler

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FormatAsYAML formats data as YAML
func FormatAsYAML(data interface{}) (string, error) {
	yamlBytes, err := yaml.Marshal(normalizeNumbers(data))
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(yamlBytes), nil
}

// FormatAsJSON formats data as JSON
func FormatAsJSON(data interface{}) (string, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(jsonBytes), nil
}

// FormatValue renders a tool result in the requested format.
func FormatValue(data interface{}, format string) (string, error) {
	switch format {
	case FormatJSON, "":
		return FormatAsJSON(data)
	case FormatYAML:
		return FormatAsYAML(data)
	default:
		return "", fmt.Errorf("%w: %s (supported: json, yaml)", ErrInvalidFormat, format)
	}
}

// ValidateFormat validates that the format is one of the supported formats
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s (supported: json, yaml)", ErrInvalidFormat, format)
	}
}

// BoolPtr returns a pointer to a boolean value
func BoolPtr(b bool) *bool {
	return &b
}

// normalizeNumbers converts json.Number values into int64 or float64 so YAML
// renders them as numbers rather than quoted strings. Containers are copied.
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = normalizeNumbers(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = normalizeNumbers(item)
		}
		return out
	default:
		return v
	}
}
