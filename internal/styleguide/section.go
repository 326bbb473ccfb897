package styleguide

// Modifier is a documented variation of a section's markup (a class name or
// pseudo-class).
type Modifier struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	ClassName   string `yaml:"className,omitempty" json:"className,omitempty"`
}

// Section is one documented node of a style guide.
type Section struct {
	Header      string     `yaml:"header" json:"header"`
	Reference   string     `yaml:"reference" json:"reference"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Markup      string     `yaml:"markup,omitempty" json:"markup,omitempty"`
	Modifiers   []Modifier `yaml:"modifiers,omitempty" json:"modifiers,omitempty"`
	Weight      float64    `yaml:"weight,omitempty" json:"weight,omitempty"`
	SourceFile  string     `yaml:"sourceFile,omitempty" json:"sourceFile,omitempty"`

	// Custom holds properties the style guide does not know about, such as
	// those named by the "custom" option.
	Custom map[string]any `yaml:",inline" json:"custom,omitempty"`

	// Synthesized marks sections added to fill gaps in the hierarchy.
	Synthesized bool `yaml:"-" json:"synthesized,omitempty"`
}

// NewSection creates a minimal section whose header and reference are both ref.
func NewSection(ref string) *Section {
	return &Section{Header: ref, Reference: ref}
}
