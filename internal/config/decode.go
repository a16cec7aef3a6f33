package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func decode(path string, data []byte) (map[string]any, error) {
	var values map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	case ".yml", ".yaml", "":
		if len(bytes.TrimSpace(data)) == 0 {
			return map[string]any{}, nil
		}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported file extension %q (use .yml, .yaml or .toml)", ext)
	}
	normalized, _ := normalizeValue(values).(map[string]any)
	if normalized == nil {
		normalized = map[string]any{}
	}
	return normalized, nil
}
