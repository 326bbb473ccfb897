package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/kssbuilder/internal/options"
)

func testSchema() *options.Registry {
	return options.NewRegistry().Register(
		options.Definition{Key: "source", Path: true},
		options.Definition{Key: "destination", Cardinality: options.Single, Path: true, Default: "styleguide"},
		options.Definition{Key: "mask", Default: []any{"*.css|*.less"}},
		options.Definition{Key: "clone", Cardinality: options.Single, Path: true},
		options.Definition{Key: "title", Cardinality: options.Single},
		options.Definition{Key: "css"},
	)
}

func TestSetRaw_MultipleIsAlwaysASequence(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []any
	}{
		{"no value", nil, []any{}},
		{"scalar", "a.css", []any{"a.css"}},
		{"typed slice", []string{"a.css", "b.css"}, []any{"a.css", "b.css"}},
		{"generic slice", []any{"a.css", 3}, []any{"a.css", 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New(testSchema()).SetRaw(map[string]any{"css": tt.raw})
			assert.Equal(t, tt.want, cfg.Get("css"))
		})
	}
}

func TestSetRaw_SingleKeepsLastValue(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{"title": []string{"one", "two", "three"}})
	assert.Equal(t, "three", cfg.Get("title"))

	cfg.SetRaw(map[string]any{"title": "four"})
	assert.Equal(t, "four", cfg.Get("title"))
}

func TestSetRaw_SingleWithoutValueOrDefaultStaysUnset(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{"title": nil})

	_, ok := cfg.Lookup("title")
	assert.False(t, ok)
	assert.Empty(t, cfg.String("title"))

	cfg.SetRaw(map[string]any{"title": []any{}})
	_, ok = cfg.Lookup("title")
	assert.False(t, ok)
}

func TestSetRaw_DefaultReplacedBySuppliedValue(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{"mask": "*.css"})
	assert.Equal(t, []any{"*.css"}, cfg.Get("mask"))

	cfg = New(testSchema()).SetRaw(map[string]any{"mask": nil})
	assert.Equal(t, []any{"*.css|*.less"}, cfg.Get("mask"))
}

func TestSetRaw_PathsAreAbsoluteAndIdempotent(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	wd, err := filepath.Abs(".")
	require.NoError(t, err)

	cfg := New(testSchema()).SetRaw(map[string]any{
		"source":      []any{"css", "/abs/less"},
		"destination": "out",
	})

	assert.Equal(t, []any{filepath.Join(wd, "css"), "/abs/less"}, cfg.Get("source"))
	assert.Equal(t, filepath.Join(wd, "out"), cfg.Get("destination"))

	again := New(testSchema()).SetRaw(cfg.All())
	assert.Equal(t, cfg.Get("source"), again.Get("source"))
	assert.Equal(t, cfg.Get("destination"), again.Get("destination"))
}

func TestSetRaw_PathDefaultIsResolved(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	wd, _ := filepath.Abs(".")

	cfg := New(testSchema()).SetRaw(map[string]any{"destination": nil})
	assert.Equal(t, filepath.Join(wd, "styleguide"), cfg.Get("destination"))
}

func TestSetRaw_NonStringPathPassesThrough(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{"source": []any{42}})
	assert.Equal(t, []any{42}, cfg.Get("source"))
}

func TestSetRaw_CloneShorthand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	wd, _ := filepath.Abs(".")
	want := filepath.Join(wd, DefaultCloneTarget)

	for _, raw := range []any{"", true} {
		cfg := New(testSchema()).SetRaw(map[string]any{"clone": raw})
		assert.Equal(t, want, cfg.Get("clone"))
	}

	cfg := New(testSchema()).SetRaw(map[string]any{"clone": "mine"})
	assert.Equal(t, filepath.Join(wd, "mine"), cfg.Get("clone"))
}

func TestSetRaw_OnlySuppliedKeysAreNormalized(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{"css": "a.css", "unknown": []string{"x"}})

	_, ok := cfg.Lookup("destination")
	assert.False(t, ok, "defaults of keys that were not supplied are not applied")
	assert.Equal(t, []string{"x"}, cfg.Get("unknown"), "keys outside the schema are stored raw")
}

func TestNormalize_AppliesDefaultsForNamedKeys(t *testing.T) {
	cfg := New(testSchema()).Normalize("mask", "source")

	assert.Equal(t, []any{"*.css|*.less"}, cfg.Get("mask"))
	assert.Equal(t, []any{}, cfg.Get("source"))
}

func TestAccessors(t *testing.T) {
	cfg := New(testSchema()).SetRaw(map[string]any{
		"css":     []any{"a.css", "b.css"},
		"title":   "Guide",
		"verbose": 2,
		"count":   "3",
	})

	assert.Equal(t, []string{"a.css", "b.css"}, cfg.Strings("css"))
	assert.Equal(t, "b.css", cfg.String("css"))
	assert.Equal(t, "Guide", cfg.String("title"))
	assert.Equal(t, []string{"Guide"}, cfg.Strings("title"))
	assert.Equal(t, 2, cfg.Int("verbose"))
	assert.Equal(t, 3, cfg.Int("count"))
	assert.Zero(t, cfg.Int("missing"))
	assert.Nil(t, cfg.Strings("missing"))
}
