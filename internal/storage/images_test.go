package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageStoreCreatesRecipesDir(t *testing.T) {
	root := t.TempDir()

	_, err := NewImageStore(root)
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(root, "recipes"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFilename(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	require.NoError(t, err)

	name := store.Filename(42, "My Photo.JPG")
	assert.True(t, strings.HasPrefix(name, "42_"))
	assert.True(t, strings.HasSuffix(name, ".jpg"))

	// missing extension falls back to .jpg
	assert.True(t, strings.HasSuffix(store.Filename(1, "photo"), ".jpg"))

	// two uploads for the same recipe never collide
	assert.NotEqual(t, store.Filename(42, "a.png"), store.Filename(42, "a.png"))
}

func TestPaths(t *testing.T) {
	root := t.TempDir()
	store, err := NewImageStore(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "recipes", "1_abc.jpg"), store.DiskPath("1_abc.jpg"))
	assert.Equal(t, "/uploads/recipes/1_abc.jpg", store.PublicPath("1_abc.jpg"))
}

func TestRemove(t *testing.T) {
	root := t.TempDir()
	store, err := NewImageStore(root)
	require.NoError(t, err)

	path := store.DiskPath("1_abc.jpg")
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))

	store.Remove("/uploads/recipes/1_abc.jpg")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// missing files and foreign paths are no-ops
	store.Remove("/uploads/recipes/1_abc.jpg")
	store.Remove("/etc/passwd")
	store.Remove("/uploads/recipes/../escape.jpg")
}
