package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/refugee-innovation-hub/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "stories")
	store, err := storage.NewLocalStorage(dir, "/uploads/stories/")
	require.NoError(t, err)

	url, err := store.Upload(context.Background(), "story_abc_1700000000.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/stories/story_abc_1700000000.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "story_abc_1700000000.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), "story_abc_1700000000.png"))
	_, err = os.Stat(filepath.Join(dir, "story_abc_1700000000.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, store.Delete(context.Background(), "story_abc_1700000000.png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads/stories")
	require.NoError(t, err)

	for _, key := range []string{"../escape.png", "nested/file.png", "..", ""} {
		_, err := store.Upload(context.Background(), key, []byte("x"), "image/png")
		assert.Error(t, err, "key %q", key)
	}
}
