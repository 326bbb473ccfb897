// Package styleguide models a parsed style guide: a flat, insertion-ordered
// list of sections whose delimiter-separated references imply a hierarchy.
package styleguide

import (
	"slices"
	"strings"
)

const (
	// DotDelimiter separates reference parts such as "forms.buttons.primary".
	DotDelimiter = "."
	// DashDelimiter separates word references such as "Forms - Buttons".
	DashDelimiter = " - "
)

// StyleGuide is the aggregate handed to builders. It owns its sections and a
// derived hierarchy index that is rebuilt by Init, never patched in place.
type StyleGuide struct {
	sections       []*Section
	delimiter      string
	fixedDelimiter bool
	autoInit       bool

	byRef    map[string]*Section
	children map[string][]*Section
	roots    []*Section
}

// Option configures a StyleGuide.
type Option func(*StyleGuide)

// WithDelimiter fixes the reference delimiter instead of detecting it.
func WithDelimiter(delim string) Option {
	return func(sg *StyleGuide) {
		if delim != "" {
			sg.delimiter = delim
			sg.fixedDelimiter = true
		}
	}
}

// New creates a style guide holding sections.
func New(sections []*Section, opts ...Option) *StyleGuide {
	sg := &StyleGuide{
		delimiter: DotDelimiter,
		autoInit:  true,
	}
	for _, opt := range opts {
		opt(sg)
	}
	sg.sections = make([]*Section, 0, len(sections))
	for _, s := range sections {
		if s != nil {
			sg.sections = append(sg.sections, s)
		}
	}
	sg.Init()
	return sg
}

// ReferenceDelimiter returns the delimiter separating reference parts.
func (sg *StyleGuide) ReferenceDelimiter() string { return sg.delimiter }

// Sections returns the sections in insertion order.
func (sg *StyleGuide) Sections() []*Section { return slices.Clone(sg.sections) }

// Len returns the number of sections.
func (sg *StyleGuide) Len() int { return len(sg.sections) }

// AddSections appends sections. The index is rebuilt unless auto-init is off.
func (sg *StyleGuide) AddSections(sections ...*Section) *StyleGuide {
	for _, s := range sections {
		if s != nil {
			sg.sections = append(sg.sections, s)
		}
	}
	if sg.autoInit {
		sg.Init()
	}
	return sg
}

// SetAutoInit toggles index rebuilding on AddSections. Turning it back on
// rebuilds immediately.
func (sg *StyleGuide) SetAutoInit(on bool) *StyleGuide {
	sg.autoInit = on
	if on {
		sg.Init()
	}
	return sg
}

// Init normalizes references and rebuilds the hierarchy index from scratch.
func (sg *StyleGuide) Init() *StyleGuide {
	if !sg.fixedDelimiter {
		sg.delimiter = DetectDelimiter(sg.references())
	}
	for _, s := range sg.sections {
		s.Reference = NormalizeReference(s.Reference, sg.delimiter)
	}

	sg.byRef = make(map[string]*Section, len(sg.sections))
	sg.children = make(map[string][]*Section)
	sg.roots = nil
	for _, s := range sg.sections {
		if _, dup := sg.byRef[s.Reference]; !dup {
			sg.byRef[s.Reference] = s
		}
	}
	for _, s := range sg.sections {
		if sg.byRef[s.Reference] != s {
			continue
		}
		parent, ok := sg.parentRef(s.Reference)
		if ok {
			if _, exists := sg.byRef[parent]; exists {
				sg.children[parent] = append(sg.children[parent], s)
				continue
			}
		}
		sg.roots = append(sg.roots, s)
	}
	return sg
}

// Section returns the section with reference ref.
func (sg *StyleGuide) Section(ref string) (*Section, bool) {
	s, ok := sg.byRef[ref]
	return s, ok
}

// Children returns the direct children of ref in insertion order.
func (sg *StyleGuide) Children(ref string) []*Section {
	return slices.Clone(sg.children[ref])
}

// Roots returns sections without an indexed parent.
func (sg *StyleGuide) Roots() []*Section { return slices.Clone(sg.roots) }

// Parent returns the reference of ref's parent, if ref has more than one part.
func (sg *StyleGuide) Parent(ref string) (string, bool) { return sg.parentRef(ref) }

// Depth returns the number of parts in ref.
func (sg *StyleGuide) Depth(ref string) int {
	if ref == "" {
		return 0
	}
	return strings.Count(ref, sg.delimiter) + 1
}

func (sg *StyleGuide) parentRef(ref string) (string, bool) {
	i := strings.LastIndex(ref, sg.delimiter)
	if i <= 0 {
		return "", false
	}
	// "a..b" belongs under "a".
	parent := NormalizeReference(ref[:i], sg.delimiter)
	return parent, parent != ""
}

func (sg *StyleGuide) references() []string {
	refs := make([]string, 0, len(sg.sections))
	for _, s := range sg.sections {
		refs = append(refs, s.Reference)
	}
	return refs
}

// DetectDelimiter returns DashDelimiter when any reference uses it, and
// DotDelimiter otherwise.
func DetectDelimiter(refs []string) string {
	for _, ref := range refs {
		if strings.Contains(ref, DashDelimiter) {
			return DashDelimiter
		}
	}
	return DotDelimiter
}

// NormalizeReference trims surrounding space and trailing delimiters, so
// "2.1." and "2.1" name the same section.
func NormalizeReference(ref, delim string) string {
	ref = strings.TrimSpace(ref)
	trimmed := strings.TrimSpace(delim)
	if trimmed == "" {
		return ref
	}
	for strings.HasSuffix(ref, trimmed) {
		ref = strings.TrimSpace(strings.TrimSuffix(ref, trimmed))
	}
	return ref
}
