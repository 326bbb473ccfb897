package options

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Declaration is the serialized form of a Definition, as written in builder
// manifests and config files.
type Declaration struct {
	Key         string `yaml:"key" json:"key" validate:"required"`
	Cardinality string `yaml:"cardinality,omitempty" json:"cardinality,omitempty" validate:"omitempty,oneof=single multiple"`
	Path        bool   `yaml:"path,omitempty" json:"path,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`
	Group       string `yaml:"group,omitempty" json:"group,omitempty"`
	Alias       string `yaml:"alias,omitempty" json:"alias,omitempty" validate:"omitempty,len=1"`
	Describe    string `yaml:"describe,omitempty" json:"describe,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FromDeclarations validates decls and converts them to definitions.
func FromDeclarations(decls []Declaration) ([]Definition, error) {
	defs := make([]Definition, 0, len(decls))
	for i, decl := range decls {
		if err := validate.Struct(decl); err != nil {
			return nil, fmt.Errorf("option %d (%q): %w", i, decl.Key, err)
		}
		card, err := ParseCardinality(decl.Cardinality)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", decl.Key, err)
		}
		defs = append(defs, Definition{
			Key:         decl.Key,
			Cardinality: card,
			Path:        decl.Path,
			Default:     decl.Default,
			Group:       decl.Group,
			Alias:       decl.Alias,
			Describe:    decl.Describe,
			String:      true,
		})
	}
	return defs, nil
}
