package styleguide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(sections []*Section) []string {
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Reference)
	}
	return out
}

func sectionsFor(references ...string) []*Section {
	out := make([]*Section, 0, len(references))
	for _, r := range references {
		out = append(out, NewSection(r))
	}
	return out
}

func TestMissingAncestors(t *testing.T) {
	tests := []struct {
		name  string
		refs  []string
		delim string
		want  []string
	}{
		{"empty input", nil, ".", nil},
		{"flat references", []string{"a", "b"}, ".", nil},
		{"deep reference and sibling", []string{"a.b.c", "x"}, ".", []string{"a", "a.b"}},
		{"shared ancestor synthesized once", []string{"a.b.c", "a.b.d", "a.e"}, ".", []string{"a", "a.b"}},
		{"existing ancestor is kept", []string{"a.b.c", "a"}, ".", []string{"a.b"}},
		{"order follows first need", []string{"x.y", "a.b"}, ".", []string{"x", "a"}},
		{"dash delimiter", []string{"Forms - Buttons - Primary"}, " - ", []string{"Forms", "Forms - Buttons"}},
		{"empty delimiter", []string{"a.b"}, "", nil},
		{"empty part", []string{"a..b"}, ".", []string{"a"}},
		{"empty part under existing ancestor", []string{"a..b", "a"}, ".", nil},
		{"leading delimiter", []string{".a"}, ".", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MissingAncestors(tt.refs, tt.delim))
		})
	}
}

func TestComplete_AppendsSynthesizedSections(t *testing.T) {
	input := sectionsFor("a.b.c", "x")

	out := Complete(input, ".")

	assert.Equal(t, []string{"a.b.c", "x", "a", "a.b"}, refs(out))
	assert.Len(t, input, 2, "input is not modified")
	assert.Equal(t, "a.b", out[3].Header)
	assert.True(t, out[3].Synthesized)
	assert.False(t, out[0].Synthesized)
}

func TestComplete_EmptyInput(t *testing.T) {
	assert.Empty(t, Complete(nil, "."))
}

func TestCompleteHierarchy_EveryPrefixExistsOnce(t *testing.T) {
	sg := New(sectionsFor("1.2.3.4", "1.2.5", "2.1", "3"))

	added := sg.CompleteHierarchy()
	assert.Equal(t, []string{"1", "1.2", "1.2.3", "2"}, refs(added))

	seen := map[string]int{}
	for _, s := range sg.Sections() {
		seen[s.Reference]++
	}
	for ref, n := range seen {
		assert.Equal(t, 1, n, "reference %q", ref)
		if parent, ok := sg.Parent(ref); ok {
			_, exists := sg.Section(parent)
			assert.True(t, exists, "parent %q of %q", parent, ref)
		}
	}
}

func TestCompleteHierarchy_IsIdempotent(t *testing.T) {
	sg := New(sectionsFor("a.b.c", "x"))
	require.Len(t, sg.CompleteHierarchy(), 2)

	assert.Empty(t, sg.CompleteHierarchy())
	assert.Equal(t, 4, sg.Len())
}

func TestCompleteHierarchy_EmptyReferencePart(t *testing.T) {
	sg := New(sectionsFor("a..b"))

	added := sg.CompleteHierarchy()
	assert.Equal(t, []string{"a"}, refs(added))
	assert.Equal(t, []string{"a..b", "a"}, refs(sg.Sections()))
	parent, ok := sg.Parent("a..b")
	require.True(t, ok)
	assert.Equal(t, "a", parent)

	assert.Empty(t, sg.CompleteHierarchy())
	assert.Equal(t, 2, sg.Len())
}

func TestCompleteHierarchy_RebuildsIndex(t *testing.T) {
	sg := New(sectionsFor("a.b.c"))
	require.Len(t, sg.Roots(), 1)
	assert.Equal(t, "a.b.c", sg.Roots()[0].Reference, "orphan is a root before completion")

	sg.CompleteHierarchy()

	roots := sg.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, "a", roots[0].Reference)
	assert.Equal(t, []string{"a.b"}, refs(sg.Children("a")))
	assert.Equal(t, []string{"a.b.c"}, refs(sg.Children("a.b")))
}
