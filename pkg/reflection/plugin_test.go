package reflection_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reflectkit/pkg/reflection"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("not a plugin"), 0o644))
}

func TestAssembliesFromDirectory(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		assemblies, err := reflection.AssembliesFromDirectory(t.TempDir(), true, "")
		require.NoError(t, err)
		assert.Empty(t, assemblies)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := reflection.AssembliesFromDirectory(filepath.Join(t.TempDir(), "missing"), false, "")
		assert.Error(t, err)
	})

	t.Run("other files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "readme.txt"))

		assemblies, err := reflection.AssembliesFromDirectory(dir, false, "")
		require.NoError(t, err)
		assert.Empty(t, assemblies)
	})

	t.Run("invalid plugin is reported", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "broken.SO"))

		assemblies, err := reflection.AssembliesFromDirectory(dir, false, "")
		assert.Error(t, err)
		assert.Empty(t, assemblies)
	})

	t.Run("subdirectories only when recursive", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "nested", "broken.so"))

		_, err := reflection.AssembliesFromDirectory(dir, false, "")
		require.NoError(t, err)

		_, err = reflection.AssembliesFromDirectory(dir, true, "")
		assert.Error(t, err)
	})
}

func TestTypesFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.so"))

	found, err := reflection.TypesFromDirectory(dir, "Named", false, "")
	assert.Error(t, err)
	assert.Empty(t, found)
}

func TestObjectsFromDirectory(t *testing.T) {
	objs, err := reflection.ObjectsFromDirectory[Named](t.TempDir(), "")
	require.NoError(t, err)
	assert.Empty(t, objs)
}
