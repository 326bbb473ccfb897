package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterResolvesDefaults(t *testing.T) {
	r := NewRegistry().Register(
		Definition{Key: "source", Path: true},
		Definition{Key: "destination", Cardinality: Single, Path: true, Default: "styleguide"},
	)

	src, ok := r.Get("source")
	require.True(t, ok)
	assert.Equal(t, Multiple, src.Cardinality)
	assert.True(t, src.Multiple())
	assert.True(t, src.Path)
	assert.False(t, src.HasDefault())

	dst, ok := r.Get("destination")
	require.True(t, ok)
	assert.Equal(t, Single, dst.Cardinality)
	assert.Equal(t, "styleguide", dst.Default)
}

func TestRegistry_ReRegisterOverwritesAndKeepsOrder(t *testing.T) {
	r := NewRegistry().Register(
		Definition{Key: "mask", Cardinality: Single, Default: "*.css"},
		Definition{Key: "css"},
	)
	r.Register(Definition{Key: "mask", Default: "*.scss"})

	mask, _ := r.Get("mask")
	assert.Equal(t, Multiple, mask.Cardinality, "last write wins, unset cardinality resolves again")
	assert.Equal(t, "*.scss", mask.Default)
	assert.Equal(t, []string{"mask", "css"}, r.Keys())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_IgnoresEmptyKey(t *testing.T) {
	r := NewRegistry().Register(Definition{})
	assert.Zero(t, r.Len())
	assert.False(t, r.Has(""))
}

func TestRegistry_Groups(t *testing.T) {
	r := NewRegistry().Register(
		Definition{Key: "source", Group: "File locations:"},
		Definition{Key: "verbose"},
		Definition{Key: "builder", Group: "Builder:"},
		Definition{Key: "destination", Group: "File locations:"},
	)

	groups := r.Groups()
	require.Len(t, groups, 3)
	assert.Equal(t, "File locations:", groups[0].Name)
	assert.Len(t, groups[0].Definitions, 2)
	assert.Equal(t, "Builder:", groups[1].Name)
	assert.Empty(t, groups[2].Name)
	assert.Equal(t, "verbose", groups[2].Definitions[0].Key)
}

func TestParseCardinality(t *testing.T) {
	c, err := ParseCardinality("")
	require.NoError(t, err)
	assert.Equal(t, Multiple, c)

	c, err = ParseCardinality(" Single ")
	require.NoError(t, err)
	assert.Equal(t, Single, c)

	_, err = ParseCardinality("many")
	require.Error(t, err)
}

func TestFromDeclarations(t *testing.T) {
	defs, err := FromDeclarations([]Declaration{
		{Key: "title", Cardinality: "single", Default: "Style guide"},
		{Key: "homepage", Path: true},
	})
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, Single, defs[0].Cardinality)
	assert.Equal(t, Multiple, defs[1].Cardinality)
	assert.True(t, defs[1].Path)

	_, err = FromDeclarations([]Declaration{{Key: ""}})
	require.Error(t, err)

	_, err = FromDeclarations([]Declaration{{Key: "x", Cardinality: "several"}})
	require.Error(t, err)

	_, err = FromDeclarations([]Declaration{{Key: "y", Alias: "long"}})
	require.Error(t, err)
}
