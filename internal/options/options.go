// Package options holds the declarative option schema that builders expose to
// users: which keys exist, whether each holds one value or a list, whether
// values are filesystem paths, and what the defaults are.
package options

import (
	"git.home.luguber.info/inful/kssbuilder/internal/foundation/normalization"
)

// Cardinality says whether an option holds a single value or an ordered list.
type Cardinality string

const (
	// Multiple options normalize to an ordered list. It is the default.
	Multiple Cardinality = "multiple"
	// Single options normalize to one value; repeated input keeps the last.
	Single Cardinality = "single"
)

var cardinalities = normalization.NewNormalizer("cardinality", map[string]Cardinality{
	"multiple": Multiple,
	"single":   Single,
}, Multiple)

// ParseCardinality converts manifest text to a Cardinality. Empty text means Multiple.
func ParseCardinality(raw string) (Cardinality, error) {
	return cardinalities.NormalizeWithError(raw)
}

// Definition describes one configurable setting.
//
// Group, Alias, Describe, String and Count are presentation metadata for
// command-line surfaces; the normalizer does not interpret them.
type Definition struct {
	Key         string
	Cardinality Cardinality
	Path        bool
	// Default is applied when no value was supplied. nil means no default.
	Default any

	Group    string
	Alias    string
	Describe string
	String   bool
	Count    bool
}

// Multiple reports whether the definition normalizes to a list.
func (d Definition) Multiple() bool { return d.Cardinality != Single }

// HasDefault reports whether a default value is declared.
func (d Definition) HasDefault() bool { return d.Default != nil }

// resolve fills unset fields with their defaults.
func (d Definition) resolve() Definition {
	if d.Cardinality == "" {
		d.Cardinality = Multiple
	}
	return d
}
