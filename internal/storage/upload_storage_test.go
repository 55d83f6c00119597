package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadStorage_SaveOpenDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewUploadStorage(dir, 1024)
	require.NoError(t, err)
	ctx := context.Background()

	path, size, err := s.Save(ctx, "abc.png", bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	assert.Equal(t, filepath.Join(s.rootPath, "abc.png"), path)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "временный файл должен быть переименован")

	f, info, err := s.Open("abc.png")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	f.Close()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, int64(3), info.Size())

	require.NoError(t, s.Delete(ctx, "abc.png"))
	require.NoError(t, s.Delete(ctx, "abc.png"), "повторное удаление не ошибка")

	_, _, err = s.Open("abc.png")
	assert.True(t, os.IsNotExist(err))
}

func TestUploadStorage_RejectsOversizedFile(t *testing.T) {
	s, err := NewUploadStorage(t.TempDir(), 4)
	require.NoError(t, err)

	_, _, err = s.Save(context.Background(), "big.png", bytes.NewReader(make([]byte, 5)))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(s.rootPath)
	require.NoError(t, err)
	assert.Empty(t, entries, "после отказа не должно остаться файлов")
}

func TestUploadStorage_ResolveBlocksTraversal(t *testing.T) {
	s, err := NewUploadStorage(t.TempDir(), 1024)
	require.NoError(t, err)

	for _, name := range []string{"", "/", "../secret", "a/../../etc/passwd", "..", "a\x00b"} {
		_, err := s.Resolve(name)
		assert.ErrorIs(t, err, ErrInvalidPath, name)
	}

	path, err := s.Resolve("/abc.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.rootPath, "abc.png"), path)

	_, _, err = s.Open("missing.png")
	assert.True(t, os.IsNotExist(err))
}
