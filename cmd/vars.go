package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// loadVars merges variables from the config, a vars file and --var pairs,
// later sources winning.
func loadVars(base map[string]any, varsFile string, pairs []string) (map[string]any, error) {
	vars := maps.Clone(base)
	if vars == nil {
		vars = make(map[string]any)
	}

	if varsFile != "" {
		fileVars, err := readVarsFile(varsFile)
		if err != nil {
			return nil, err
		}
		maps.Copy(vars, fileVars)
	}

	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --var %q (expected key=value)", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid --var %q (empty key)", pair)
		}
		vars[key] = strings.TrimSpace(val)
	}

	return vars, nil
}

func readVarsFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vars file: %w", err)
	}

	var decoded map[string]any
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &decoded); err != nil {
			return nil, fmt.Errorf("parsing vars file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("parsing vars file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("parsing vars file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported vars file extension %q", ext)
	}

	if decoded == nil {
		return map[string]any{}, nil
	}

	if nested, ok := decoded["variables"]; ok {
		if asMap, ok := nested.(map[string]any); ok {
			return asMap, nil
		}
	}

	return decoded, nil
}
