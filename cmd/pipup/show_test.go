package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePackageArg(t *testing.T) {
	t.Run("plain name passes through", func(t *testing.T) {
		name, err := resolvePackageArg("requests")
		require.NoError(t, err)
		assert.Equal(t, "requests", name)
	})

	t.Run("pypi purl resolves to the name", func(t *testing.T) {
		name, err := resolvePackageArg("pkg:pypi/requests")
		require.NoError(t, err)
		assert.Equal(t, "requests", name)
	})

	t.Run("purl with version still resolves", func(t *testing.T) {
		name, err := resolvePackageArg("pkg:pypi/requests@2.32.3")
		require.NoError(t, err)
		assert.Equal(t, "requests", name)
	})

	t.Run("non-pypi purl is rejected", func(t *testing.T) {
		_, err := resolvePackageArg("pkg:npm/left-pad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "only pkg:pypi")
	})

	t.Run("malformed purl is rejected", func(t *testing.T) {
		_, err := resolvePackageArg("pkg:::nope")
		assert.Error(t, err)
	})
}

func TestShowParseFlags(t *testing.T) {
	t.Run("requires exactly one argument", func(t *testing.T) {
		cmd := NewShowCommand()
		assert.Error(t, cmd.ParseFlags(nil))

		cmd = NewShowCommand()
		assert.Error(t, cmd.ParseFlags([]string{"a", "b"}))
	})

	t.Run("accepts a package name", func(t *testing.T) {
		cmd := NewShowCommand()
		require.NoError(t, cmd.ParseFlags([]string{"requests"}))
		assert.Equal(t, "requests", cmd.options.Package)
	})
}
