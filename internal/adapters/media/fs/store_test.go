package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"husbandry-tracker/internal/ports/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, media.DriverFS, s.Driver())

	obj, err := s.Put(ctx, "a/b.png", strings.NewReader("pngdata"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, int64(7), obj.Size)
	assert.NotEmpty(t, obj.ETag)

	_, err = s.Put(ctx, "a/b.png", strings.NewReader("again"), "image/png")
	assert.ErrorIs(t, err, media.ErrExists)

	got, rc, err := s.Get(ctx, "a/b.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "pngdata", string(body))
	assert.Equal(t, "image/png", got.ContentType)
	assert.Equal(t, obj.ETag, got.ETag)

	require.NoError(t, s.Delete(ctx, "a/b.png"))
	_, _, err = s.Get(ctx, "a/b.png")
	assert.ErrorIs(t, err, media.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a/b.png"), media.ErrNotFound)
}

func TestStore_GetWithoutSidecar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "legacy.jpg"), []byte("jpg"), 0o644))

	s, err := New(root)
	require.NoError(t, err)

	obj, rc, err := s.Get(context.Background(), "legacy.jpg")
	require.NoError(t, err)
	_ = rc.Close()
	assert.Equal(t, int64(3), obj.Size)
	assert.Empty(t, obj.ContentType)
}

func TestStore_RejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "/abs", "x.png.meta"} {
		_, err := s.Put(context.Background(), key, strings.NewReader("x"), "")
		assert.ErrorIs(t, err, media.ErrInvalidKey, key)
	}
}
