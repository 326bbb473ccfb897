package styleguide

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile_YAMLList(t *testing.T) {
	path := writeModel(t, t.TempDir(), "buttons.yaml", `
- header: Buttons
  reference: forms.buttons
  markup: <button class="{{modifier_class}}">Go</button>
  modifiers:
    - name: .primary
      description: Main call to action
  deprecated: true
- header: ""
  reference: ""
`)

	sections, delim, err := ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, delim)
	require.Len(t, sections, 1)
	s := sections[0]
	assert.Equal(t, "forms.buttons", s.Reference)
	assert.Equal(t, ".primary", s.Modifiers[0].Name)
	assert.Equal(t, true, s.Custom["deprecated"])
	assert.Equal(t, path, s.SourceFile)
}

func TestParseFile_JSONDocument(t *testing.T) {
	path := writeModel(t, t.TempDir(), "model.json",
		`{"delimiter": " - ", "sections": [{"header": "Primary", "reference": "Forms - Buttons - Primary"}]}`)

	sections, delim, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, " - ", delim)
	require.Len(t, sections, 1)
	assert.Equal(t, "Primary", sections[0].Header)
}

func TestParseFile_Markdown(t *testing.T) {
	dir := t.TempDir()
	path := writeModel(t, dir, "colors.md", "---\nreference: base.colors\nweight: 2\n---\n# Colors\n\nThe *palette*.\n")

	sections, _, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Colors", sections[0].Header)
	assert.Equal(t, "The *palette*.", sections[0].Description)
	assert.InDelta(t, 2.0, sections[0].Weight, 0.001)

	plain := writeModel(t, dir, "readme.md", "# Not a section\n")
	sections, _, err = ParseFile(plain)
	require.NoError(t, err)
	assert.Empty(t, sections)

	broken := writeModel(t, dir, "broken.md", "---\nreference: x\n# no close\n")
	_, _, err = ParseFile(broken)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestParseFile_SkipsUnknownExtensions(t *testing.T) {
	path := writeModel(t, t.TempDir(), "main.css", "/* Buttons\n\nStyleguide 1.1 */")

	sections, _, err := ParseFile(path)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestFileParser_Parse(t *testing.T) {
	dir := t.TempDir()
	a := writeModel(t, dir, "a.yaml", "- {header: Deep, reference: a.b.c}\n")
	b := writeModel(t, dir, "b.yaml", "sections:\n  - {header: X, reference: x}\n")

	sg, err := FileParser{}.Parse(context.Background(), []string{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b.c", "x"}, refs(sg.Sections()))
	assert.Equal(t, ".", sg.ReferenceDelimiter())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileParser{}.Parse(ctx, []string{a})
	require.ErrorIs(t, err, context.Canceled)
}
