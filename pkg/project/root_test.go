package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	t.Run("finds platformio.ini in a parent", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "platformio.ini"), []byte("[env]\n"), 0644))
		nested := filepath.Join(root, "src", "lib")
		require.NoError(t, os.MkdirAll(nested, 0755))

		got, err := FindRoot(nested)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("finds secretdefs.yaml", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "secretdefs.yaml"), nil, 0644))

		got, err := FindRoot(root)
		require.NoError(t, err)
		assert.Equal(t, root, got)
	})

	t.Run("falls back to start", func(t *testing.T) {
		start := t.TempDir()

		got, err := FindRoot(start)
		require.NoError(t, err)
		assert.Equal(t, start, got)
	})
}
