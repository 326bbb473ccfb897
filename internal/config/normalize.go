package config

import (
	"path/filepath"
	"reflect"

	"git.home.luguber.info/inful/kssbuilder/internal/options"
	"git.home.luguber.info/inful/kssbuilder/internal/util/sets"
)

// Normalize runs the normalization pass over keys, visiting them in schema
// registration order. Keys without a definition are left as supplied.
func (c *Config) Normalize(keys ...string) *Config {
	wanted := sets.New(keys...)
	for _, key := range c.schema.Keys() {
		if !wanted.Has(key) {
			continue
		}
		def, _ := c.schema.Get(key)
		c.normalizeKey(def)
	}
	return c
}

func (c *Config) normalizeKey(def options.Definition) {
	value, present := c.values[def.Key]
	if value == nil {
		present = false
	}
	if !present && def.HasDefault() {
		value, present = def.Default, true
	}

	if def.Multiple() {
		switch {
		case !present:
			value = []any{}
		case isSequence(value):
			value = toList(value)
		default:
			value = []any{value}
		}
		present = true
	} else if present && isSequence(value) {
		// A single-valued option given several times keeps the last value.
		list := toList(value)
		if len(list) == 0 {
			present = false
		} else {
			value = list[len(list)-1]
		}
	}

	if !present {
		delete(c.values, def.Key)
		return
	}

	if def.Path {
		value = resolvePaths(value)
	}
	c.values[def.Key] = value
}

// resolvePaths makes every string in value absolute against the working
// directory. Non-string values pass through untouched.
func resolvePaths(value any) any {
	switch v := value.(type) {
	case string:
		return absPath(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			if s, ok := elem.(string); ok {
				out[i] = absPath(s)
			} else {
				out[i] = elem
			}
		}
		return out
	default:
		return value
	}
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case []byte:
		return false
	case []any:
		return true
	}
	k := reflect.TypeOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

// toList copies any slice or array into a fresh []any.
func toList(v any) []any {
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
