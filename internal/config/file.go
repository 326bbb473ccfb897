package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

// LoadFile reads raw option values from a YAML, JSON, or TOML file.
//
// Environment variables in the file are expanded before decoding. Relative
// values of path options are resolved against the file's directory so a config
// file behaves the same regardless of where the command is run from.
func LoadFile(path string, schema *options.Registry) (map[string]any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	raw, err := decode(abs, []byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid config file").
			Fatal().
			WithContext("path", abs).
			Build()
	}
	if raw == nil {
		raw = map[string]any{}
	}

	if schema != nil {
		base := filepath.Dir(abs)
		for key, value := range raw {
			if def, ok := schema.Get(key); ok && def.Path {
				raw[key] = relativeTo(base, value)
			}
		}
	}
	return raw, nil
}

func decode(path string, data []byte) (map[string]any, error) {
	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml", ".json", "":
		// JSON is a subset of YAML 1.2.
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config file type %q", filepath.Ext(path))
	}
	return raw, nil
}

func relativeTo(base string, value any) any {
	switch v := value.(type) {
	case string:
		if v == "" || filepath.IsAbs(v) {
			return v
		}
		return filepath.Join(base, v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = relativeTo(base, elem)
		}
		return out
	default:
		return value
	}
}
