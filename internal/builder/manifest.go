package builder

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

// ManifestFile is the file that turns a directory into a builder module.
const ManifestFile = "kss-builder.yaml"

// Manifest declares a builder module on disk.
type Manifest struct {
	// Extends names the registered module to construct.
	Extends string `yaml:"extends" validate:"required_without=Generator"`
	// Options are registered on the instance after construction.
	Options []options.Declaration `yaml:"options" validate:"dive"`
	// Generator is the legacy 2.x shape. Its presence marks the module as
	// incompatible.
	Generator *Generator `yaml:"generator"`
}

// Generator is the legacy builder descriptor.
type Generator struct {
	ImplementsAPI string `yaml:"implementsAPI" validate:"required"`
}

var manifestValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the manifest's structure.
func (m *Manifest) Validate() error {
	return manifestValidator.Struct(m)
}

// ReadManifest reads and validates a builder manifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}

// ParseManifest decodes and validates manifest YAML. Unknown fields are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode builder manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid builder manifest: %w", err)
	}
	return &m, nil
}
