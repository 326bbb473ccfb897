// Package config normalizes raw user settings against an option schema.
//
// Raw values arrive from config files, command-line flags, or call sites as a
// flat key/value map. The normalizer applies schema defaults, coerces values to
// the declared cardinality, and resolves path options to absolute paths. It is
// deliberately permissive: malformed values are passed through and surface as
// failures where they are used, not here.
package config

import (
	"maps"

	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

const (
	// CloneKey is the option naming the destination of a builder clone.
	CloneKey = "clone"
	// DefaultCloneTarget replaces an empty or boolean-true clone value.
	DefaultCloneTarget = "custom-builder"
)

// Config is the canonical configuration store for one build.
type Config struct {
	schema *options.Registry
	values map[string]any
}

// New creates an empty configuration normalized against schema.
func New(schema *options.Registry) *Config {
	if schema == nil {
		schema = options.NewRegistry()
	}
	return &Config{
		schema: schema,
		values: make(map[string]any),
	}
}

// Schema returns the option registry the configuration is normalized against.
func (c *Config) Schema() *options.Registry { return c.schema }

// SetRaw merges values into the store, overwriting earlier values for the same
// key, then normalizes exactly the supplied keys. It returns c for chaining.
func (c *Config) SetRaw(values map[string]any) *Config {
	keys := make([]string, 0, len(values))
	for key, value := range values {
		c.values[key] = value
		keys = append(keys, key)
	}

	// "--clone" with no argument means "clone into the default folder". The
	// default cannot live in the option definition or cloning would always be on.
	if v, ok := values[CloneKey]; ok {
		if s, isString := v.(string); (isString && s == "") || v == true {
			c.values[CloneKey] = DefaultCloneTarget
		}
	}

	return c.Normalize(keys...)
}

// Get returns the normalized value for key, or nil when none is stored.
func (c *Config) Get(key string) any {
	return c.values[key]
}

// Lookup returns the normalized value for key and whether one is stored.
func (c *Config) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// All returns a shallow copy of every stored value.
func (c *Config) All() map[string]any {
	return maps.Clone(c.values)
}
