package config

import (
	"fmt"
	"strconv"
)

// String returns the value for key as a string. Lists yield their last
// element; missing values yield "".
func (c *Config) String(key string) string {
	switch v := c.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []any:
		if len(v) == 0 {
			return ""
		}
		return fmt.Sprint(v[len(v)-1])
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns the value for key as a list of strings.
func (c *Config) Strings(key string) []string {
	switch v := c.values[key].(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			out = append(out, fmt.Sprint(elem))
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

// Int returns the value for key as an int, or 0 when it is missing or not numeric.
func (c *Config) Int(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}
