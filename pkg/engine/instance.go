package engine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/herlein/radiocfg/pkg/descriptor"
)

// Instance is a configuration instance: configurable name to value. Values
// are strings, numbers or booleans as decoded from YAML or set by a host.
type Instance map[string]any

// Has reports whether the instance carries a value for key
func (i Instance) Has(key string) bool {
	_, ok := i[key]
	return ok
}

// String returns the value of key as text
func (i Instance) String(key string) (string, error) {
	v, ok := i[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	return formatValue(v), nil
}

// Float returns the value of key as a number
func (i Instance) Float(key string) (float64, error) {
	v, ok := i[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			if u, uerr := descriptor.ParseValue(n); uerr == nil {
				return float64(u), nil
			}
			return 0, fmt.Errorf("%w: %s=%q", ErrInvalidParameter, key, n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s=%v", ErrInvalidParameter, key, v)
}

// Uint returns the value of key as an unsigned integer; text may use a 0x
// prefix
func (i Instance) Uint(key string) (uint64, error) {
	v, ok := i[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	switch n := v.(type) {
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case uint64:
		return n, nil
	case float64:
		if n >= 0 && n == math.Trunc(n) {
			return uint64(n), nil
		}
	case string:
		if u, err := descriptor.ParseValue(n); err == nil {
			return u, nil
		}
	}
	return 0, fmt.Errorf("%w: %s=%v", ErrInvalidParameter, key, v)
}

// Bool returns the value of key as a boolean
func (i Instance) Bool(key string) (bool, error) {
	v, ok := i[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingParameter, key)
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed, nil
		}
	}
	return false, fmt.Errorf("%w: %s=%v", ErrInvalidParameter, key, v)
}

// formatValue renders an instance value the way it is displayed
func formatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case bool:
		return strconv.FormatBool(n)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(n), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// LoadInstance reads a configuration instance from a YAML file
func LoadInstance(path string) (Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance: %w", err)
	}

	inst := make(Instance)
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return nil, fmt.Errorf("failed to unmarshal instance: %w", err)
	}
	return inst, nil
}

// SaveInstance writes a configuration instance as YAML
func SaveInstance(inst Instance, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(inst)
	if err != nil {
		return fmt.Errorf("failed to marshal instance: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
