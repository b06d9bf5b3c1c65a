package parsers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryKnowsBuiltInSources(t *testing.T) {
	registry := NewDefaultRegistry()

	for _, source := range []string{
		"taaft",
		"theresanaiforthat",
		"theresanaiforthat.com",
		"producthunt",
		"producthunt.com",
		"hexofy",
		"taaft-page",
	} {
		assert.True(t, registry.IsSupported(source), "expected %s to be supported", source)
	}
}

func TestRegistryAliasesResolveToSameParser(t *testing.T) {
	registry := NewDefaultRegistry()

	byAlias, err := registry.Get("taaft")
	require.NoError(t, err)
	byDomain, err := registry.Get("theresanaiforthat.com")
	require.NoError(t, err)

	assert.Same(t, byAlias, byDomain)
}

func TestRegistryNormalizesSourceIdentifiers(t *testing.T) {
	registry := NewDefaultRegistry()

	parser, err := registry.Get("  ProductHunt  ")
	require.NoError(t, err)
	assert.Equal(t, "producthunt.com", parser.SourceName())
}

func TestRegistryUnknownSource(t *testing.T) {
	registry := NewDefaultRegistry()

	_, err := registry.Get("unknown_source")
	require.Error(t, err)

	var unsupported *UnsupportedSourceError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "unknown_source", unsupported.Source)
	assert.Contains(t, unsupported.Supported, "taaft")
	assert.Contains(t, unsupported.Supported, "hexofy")
	assert.Contains(t, err.Error(), "unsupported source")
}

func TestRegistryReplacementWins(t *testing.T) {
	registry := NewRegistry()
	registry.Register("custom", NewHexofyParser())
	registry.Register("custom", NewProductHuntParser())

	parser, err := registry.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, "producthunt.com", parser.SourceName())
}

func TestSupportedSourcesSorted(t *testing.T) {
	registry := NewDefaultRegistry()

	sources := registry.SupportedSources()
	require.NotEmpty(t, sources)
	assert.IsIncreasing(t, sources)
}
