package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("media", "posts", "Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "media/posts/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Len(t, strings.TrimSuffix(strings.TrimPrefix(key, "media/posts/"), ".jpg"), 36)

	assert.NotEqual(t, key, ObjectKey("media", "posts", "Photo.JPG"))
	assert.False(t, strings.Contains(ObjectKey("media", "posts", "noext"), "."))
}

func TestThumbKey(t *testing.T) {
	assert.Equal(t, "media/posts/thumbs/a.png", ThumbKey("media/posts/a.png"))
}

func TestPublicURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8080/media/")
	key := "media/posts/a.png"
	external := "https://cdn.example.com/x.png"
	empty := ""

	assert.Equal(t, "http://localhost:8080/media/media/posts/a.png", PublicURL(s, &key))
	assert.Equal(t, external, PublicURL(s, &external))
	assert.Empty(t, PublicURL(s, &empty))
	assert.Empty(t, PublicURL(s, nil))
}

func TestLocalStoragePutDelete(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root, "/media")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "media/posts/a.txt", strings.NewReader("hello"), 5, "text/plain"))
	raw, err := os.ReadFile(filepath.Join(root, "media", "posts", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(raw))

	require.NoError(t, s.Delete(ctx, "media/posts/a.txt"))
	require.NoError(t, s.Delete(ctx, "media/posts/a.txt"))

	assert.Error(t, s.Put(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain"))
}

func TestThumbnail(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1200, 600))
	for x := 0; x < 1200; x++ {
		src.Set(x, 10, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, contentType, err := Thumbnail(&buf, "banner.png", 400)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	thumb, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, thumb.Bounds().Dx())
	assert.Equal(t, 200, thumb.Bounds().Dy())
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	_, _, err := Thumbnail(strings.NewReader("not an image"), "x.png", 400)
	assert.Error(t, err)
}
