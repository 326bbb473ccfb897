package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestSplitMask(t *testing.T) {
	assert.Equal(t, []string{"*.css", "*.less"}, SplitMask("*.css| *.less|"))
	assert.Empty(t, SplitMask(""))
}

func TestMatcher(t *testing.T) {
	m, err := NewMatcher("*.css|*.less|components/**/*.md")
	require.NoError(t, err)

	assert.True(t, m.Match("main.css"))
	assert.True(t, m.Match("deep/dir/theme.less"))
	assert.True(t, m.Match("components/forms/button.md"))
	assert.False(t, m.Match("docs/readme.md"))
	assert.False(t, m.Match("main.js"))

	_, err = NewMatcher("")
	require.Error(t, err)
	_, err = NewMatcher("[*.css")
	require.Error(t, err)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.css"))
	touch(t, filepath.Join(root, "a.less"))
	touch(t, filepath.Join(root, "sub", "c.css"))
	touch(t, filepath.Join(root, "sub", "ignore.js"))
	touch(t, filepath.Join(root, ".cache", "d.css"))
	touch(t, filepath.Join(root, "node_modules", "lib", "e.css"))
	other := t.TempDir()
	single := filepath.Join(other, "single.css")
	touch(t, single)

	files, err := Discover(context.Background(), []string{root, single, root}, "*.css|*.less")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.less"),
		filepath.Join(root, "b.css"),
		filepath.Join(root, "sub", "c.css"),
		single,
	}, files)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, "*.css")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDirs(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "x.css")
	touch(t, file)

	assert.Equal(t, []string{root}, Dirs([]string{root, file}))
}
