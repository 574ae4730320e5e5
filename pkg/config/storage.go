package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func SaveToFile(configuration *Config, path string) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(configuration)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func LoadFromFile(path string) (*Config, error) {
	configuration := Default()
	if err := loadInto(path, configuration); err != nil {
		return nil, err
	}
	return configuration, nil
}

// loadInto decodes the file over an existing configuration so that absent
// keys keep their defaults
func loadInto(path string, configuration *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, configuration); err != nil {
		return fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return nil
}

func GetConfigPath(device string) string {
	return filepath.Join("etc", "radiocfg", fmt.Sprintf("%s.yaml", device))
}
