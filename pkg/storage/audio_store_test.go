package storage

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAudioStore(dir, zap.NewNop())
	require.NoError(t, err)

	path, err := store.Save(strings.NewReader("fake audio bytes"), "visit.mp3")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".mp3", filepath.Ext(path))

	f, err := store.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(data))
}

func TestSave_UniqueNames(t *testing.T) {
	store, err := NewAudioStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		path, err := store.Save(strings.NewReader("x"), "visit.wav")
		require.NoError(t, err)
		assert.False(t, seen[path], "path %s generated twice", path)
		seen[path] = true
	}
}

func TestOpen_MissingFile(t *testing.T) {
	store, err := NewAudioStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = store.Open(filepath.Join(t.TempDir(), "missing.mp3"))
	require.Error(t, err)
}

func TestNewAudioStore_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "uploads")

	store, err := NewAudioStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = store.Save(strings.NewReader("x"), "visit.ogg")
	require.NoError(t, err)
}
