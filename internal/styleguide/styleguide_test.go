package styleguide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DetectsDelimiter(t *testing.T) {
	assert.Equal(t, ".", New(sectionsFor("a.b")).ReferenceDelimiter())
	assert.Equal(t, " - ", New(sectionsFor("Forms", "Forms - Buttons")).ReferenceDelimiter())
	assert.Equal(t, "/", New(sectionsFor("a - b"), WithDelimiter("/")).ReferenceDelimiter())
}

func TestInit_NormalizesReferences(t *testing.T) {
	sg := New([]*Section{{Header: "Buttons", Reference: " 2.1. "}})

	s, ok := sg.Section("2.1")
	require.True(t, ok)
	assert.Equal(t, "Buttons", s.Header)
}

func TestIndex_ChildrenInInsertionOrder(t *testing.T) {
	sg := New(sectionsFor("a", "a.z", "a.b", "b"))

	assert.Equal(t, []string{"a", "b"}, refs(sg.Roots()))
	assert.Equal(t, []string{"a.z", "a.b"}, refs(sg.Children("a")))
	assert.Empty(t, sg.Children("b"))
	assert.Equal(t, 2, sg.Depth("a.z"))
	assert.Equal(t, 0, sg.Depth(""))

	parent, ok := sg.Parent("a.z")
	require.True(t, ok)
	assert.Equal(t, "a", parent)
	_, ok = sg.Parent("a")
	assert.False(t, ok)
}

func TestAutoInit(t *testing.T) {
	sg := New(sectionsFor("a"))

	sg.SetAutoInit(false).AddSections(NewSection("b"))
	_, indexed := sg.Section("b")
	assert.False(t, indexed, "index is stale while auto-init is off")

	sg.SetAutoInit(true)
	_, indexed = sg.Section("b")
	assert.True(t, indexed)

	sg.AddSections(NewSection("c"), nil)
	_, indexed = sg.Section("c")
	assert.True(t, indexed)
	assert.Equal(t, 3, sg.Len())
}

func TestDuplicateReferencesIndexFirst(t *testing.T) {
	first := &Section{Header: "First", Reference: "a"}
	sg := New([]*Section{first, {Header: "Second", Reference: "a"}})

	s, _ := sg.Section("a")
	assert.Same(t, first, s)
	assert.Len(t, sg.Roots(), 1)
}

func TestNormalizeReference(t *testing.T) {
	assert.Equal(t, "1.2", NormalizeReference("1.2.", "."))
	assert.Equal(t, "Forms - Buttons", NormalizeReference(" Forms - Buttons - ", " - "))
	assert.Equal(t, "x", NormalizeReference("x", ""))
}
