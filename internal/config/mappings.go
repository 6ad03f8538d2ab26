package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadReplacements reads an old-name to new-name mapping table from a YAML
// file. An empty path returns an empty map.
func LoadReplacements(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file %s: %w", path, err)
	}

	replacements := make(map[string]string)
	if err := yaml.Unmarshal(data, &replacements); err != nil {
		return nil, fmt.Errorf("parse mapping file %s: %w", path, err)
	}

	return replacements, nil
}
