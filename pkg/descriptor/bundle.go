package descriptor

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Bundle is a complete descriptor set: per-group data plus the device PA
// table
type Bundle struct {
	Groups  map[Group]*GroupData `yaml:"groups"`
	PATable []PABand             `yaml:"paTable,omitempty"`
}

// Group returns the descriptors of a protocol group
func (b *Bundle) Group(g Group) (*GroupData, error) {
	data, ok := b.Groups[g]
	if !ok || data == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, g)
	}
	return data, nil
}

// ParseBundle decodes a YAML descriptor bundle
func ParseBundle(data []byte) (*Bundle, error) {
	var bundle Bundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}
	return &bundle, nil
}

// LoadBundle reads a YAML descriptor bundle from a file
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}
	return ParseBundle(data)
}

// SaveBundle writes a descriptor bundle as YAML
func SaveBundle(bundle *Bundle, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
