package paramutil

import (
	"errors"
	"testing"

	"github.com/futuretea/wordpress-mcp-server/pkg/toolset/handler"
)

func TestExtractPresentString(t *testing.T) {
	params := map[string]interface{}{"title": "", "num": 1.0}

	if v, err := ExtractPresentString(params, "title"); err != nil || v != "" {
		t.Errorf("ExtractPresentString(title) = %q, %v, want empty string and no error", v, err)
	}
	for _, key := range []string{"num", "missing"} {
		if _, err := ExtractPresentString(params, key); !errors.Is(err, handler.ErrMissingParameter) {
			t.Errorf("ExtractPresentString(%s) error = %v, want ErrMissingParameter", key, err)
		}
	}
}

func TestExtractNonEmptyString(t *testing.T) {
	params := map[string]interface{}{"title": "New", "content": "", "status": nil}

	if v := ExtractNonEmptyString(params, "title"); v == nil || *v != "New" {
		t.Errorf("ExtractNonEmptyString(title) = %v, want New", v)
	}
	for _, key := range []string{"content", "status", "missing"} {
		if v := ExtractNonEmptyString(params, key); v != nil {
			t.Errorf("ExtractNonEmptyString(%s) = %q, want nil", key, *v)
		}
	}
}

func TestExtractOptionalInt64(t *testing.T) {
	params := map[string]interface{}{
		"float": 5.0, "int": 7, "int64": int64(9), "frac": 1.5, "str": "3",
		"limit": float64(maxExactInt), "huge": 1e20, "negHuge": -1e20,
	}

	tests := []struct {
		key  string
		want *int64
	}{
		{"float", int64Ptr(5)},
		{"int", int64Ptr(7)},
		{"int64", int64Ptr(9)},
		{"limit", int64Ptr(maxExactInt)},
		{"frac", nil},
		{"str", nil},
		{"huge", nil},
		{"negHuge", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		got := ExtractOptionalInt64(params, tt.key)
		if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
			t.Errorf("ExtractOptionalInt64(%s) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestExtractInt64(t *testing.T) {
	params := map[string]interface{}{
		"float": 5.0, "zero": 0.0, "negative": -3.0, "frac": 5.5, "str": "3", "huge": 1e20, "null": nil,
	}

	tests := []struct {
		key     string
		want    int64
		wantErr bool
	}{
		{"float", 5, false},
		{"zero", 0, false},
		{"negative", -3, false},
		{"missing", 42, false},
		{"null", 42, false},
		{"frac", 0, true},
		{"str", 0, true},
		{"huge", 0, true},
	}
	for _, tt := range tests {
		got, err := ExtractInt64(params, tt.key, 42)
		if tt.wantErr {
			if !errors.Is(err, handler.ErrInvalidParameter) {
				t.Errorf("ExtractInt64(%s) error = %v, want ErrInvalidParameter", tt.key, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExtractInt64(%s) = %d, %v, want %d", tt.key, got, err, tt.want)
		}
	}
}

func TestExtractRequiredInt64(t *testing.T) {
	params := map[string]interface{}{"post_id": 42.0, "bad": "x", "null": nil}

	if v, err := ExtractRequiredInt64(params, "post_id"); err != nil || v != 42 {
		t.Errorf("ExtractRequiredInt64(post_id) = %d, %v", v, err)
	}
	if _, err := ExtractRequiredInt64(params, "missing"); !errors.Is(err, handler.ErrMissingParameter) {
		t.Errorf("missing: error = %v, want ErrMissingParameter", err)
	}
	if _, err := ExtractRequiredInt64(params, "null"); !errors.Is(err, handler.ErrMissingParameter) {
		t.Errorf("null: error = %v, want ErrMissingParameter", err)
	}
	if _, err := ExtractRequiredInt64(params, "bad"); !errors.Is(err, handler.ErrInvalidParameter) {
		t.Errorf("bad: error = %v, want ErrInvalidParameter", err)
	}
}

func TestExtractRequiredID(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  error
	}{
		{"positive", 42.0, nil},
		{"zero", 0.0, handler.ErrInvalidParameter},
		{"negative", -1.0, handler.ErrInvalidParameter},
		{"overflow", 1e20, handler.ErrInvalidParameter},
		{"fractional", 1.5, handler.ErrInvalidParameter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ExtractRequiredID(map[string]interface{}{"post_id": tt.value}, "post_id")
			if tt.want == nil {
				if err != nil || id != 42 {
					t.Errorf("ExtractRequiredID() = %d, %v", id, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("ExtractRequiredID() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ExtractRequiredID(map[string]interface{}{}, "post_id"); !errors.Is(err, handler.ErrMissingParameter) {
		t.Errorf("missing: error = %v, want ErrMissingParameter", err)
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestExtractAndValidateFormat(t *testing.T) {
	if f, err := ExtractAndValidateFormat(map[string]interface{}{}); err != nil || f != handler.FormatJSON {
		t.Errorf("default format = %q, %v", f, err)
	}
	if f, err := ExtractAndValidateFormat(map[string]interface{}{"format": "yaml"}); err != nil || f != handler.FormatYAML {
		t.Errorf("yaml format = %q, %v", f, err)
	}
	if _, err := ExtractAndValidateFormat(map[string]interface{}{"format": "table"}); !errors.Is(err, handler.ErrInvalidFormat) {
		t.Errorf("table format error = %v, want ErrInvalidFormat", err)
	}
}

func TestCheckWritable(t *testing.T) {
	if err := CheckWritable(map[string]interface{}{}); err != nil {
		t.Errorf("CheckWritable() without flag error = %v", err)
	}
	if err := CheckWritable(map[string]interface{}{"readOnly": true}); !errors.Is(err, handler.ErrReadOnlyMode) {
		t.Errorf("CheckWritable() with flag error = %v, want ErrReadOnlyMode", err)
	}
}
