package storage

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	url, err := store.Save([]byte("note body"), "lesson.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.Equal(t, ".pdf", filepath.Ext(url))

	data, err := os.ReadFile(filepath.Join(dir, path.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "note body", string(data))

	require.NoError(t, store.Delete(url))
	_, err = os.Stat(filepath.Join(dir, path.Base(url)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageSaveStream(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := store.SaveStream(strings.NewReader("streamed content"), "notes.docx")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, path.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, "streamed content", string(data))
}

func TestLocalStorageUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	first, err := store.Save([]byte("a"), "same.pdf")
	require.NoError(t, err)
	second, err := store.Save([]byte("b"), "same.pdf")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
