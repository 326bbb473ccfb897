package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/kssbuilder/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadFile_YAMLResolvesPathsAgainstFileDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "kss.yaml")
	writeFile(t, path, "source:\n  - css\n  - /abs/src\ndestination: out\ntitle: ${KSS_TEST_TITLE}\n")
	t.Setenv("KSS_TEST_TITLE", "Pattern library")

	raw, err := LoadFile(path, testSchema())
	require.NoError(t, err)

	base := filepath.Join(dir, "conf")
	assert.Equal(t, []any{filepath.Join(base, "css"), "/abs/src"}, raw["source"])
	assert.Equal(t, filepath.Join(base, "out"), raw["destination"])
	assert.Equal(t, "Pattern library", raw["title"])
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kss.json")
	writeFile(t, path, `{"css": ["a.css", "b.css"], "title": "Guide"}`)

	raw, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{"a.css", "b.css"}, raw["css"])
	assert.Equal(t, "Guide", raw["title"])
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kss.toml")
	writeFile(t, path, "title = \"Guide\"\ncss = [\"a.css\"]\ndestination = \"out\"\n")

	raw, err := LoadFile(path, testSchema())
	require.NoError(t, err)
	assert.Equal(t, "Guide", raw["title"])
	assert.Equal(t, []any{"a.css"}, raw["css"])
	assert.Equal(t, filepath.Join(filepath.Dir(path), "out"), raw["destination"])
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "source: [unterminated\n")
	_, err = LoadFile(bad, nil)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	ini := filepath.Join(dir, "kss.ini")
	writeFile(t, ini, "a=b\n")
	_, err = LoadFile(ini, nil)
	require.Error(t, err)
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, ".env"), "KSS_DOTENV_NEW=loaded\nKSS_DOTENV_SET=fromfile\n")
	t.Setenv("KSS_DOTENV_SET", "fromenv")
	t.Setenv("KSS_DOTENV_NEW", "")
	require.NoError(t, os.Unsetenv("KSS_DOTENV_NEW"))

	loaded, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Equal(t, ".env", loaded)
	assert.Equal(t, "loaded", os.Getenv("KSS_DOTENV_NEW"))
	assert.Equal(t, "fromenv", os.Getenv("KSS_DOTENV_SET"))
}

func TestLoadDotEnv_NoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	loaded, err := LoadDotEnv()
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
