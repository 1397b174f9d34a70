package media_test

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdesk/internal/media"
)

// webpFixture is a 1x1 black pixel encoded as lossless webp.
func webpFixture() []byte {
	return []byte{
		'R', 'I', 'F', 'F', 0x16, 0x00, 0x00, 0x00,
		'W', 'E', 'B', 'P', 'V', 'P', '8', 'L',
		0x09, 0x00, 0x00, 0x00,
		0x2f, 0x00, 0x00, 0x00, 0x00, 0x88, 0x88, 0xfe, 0x07, 0x00,
	}
}

func TestStoreSaveAndDelete(t *testing.T) {
	store, err := media.NewStore(t.TempDir())
	require.NoError(t, err)

	handle, err := store.Save("photo.png", strings.NewReader("not really a png"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(handle, media.PhotoDir+string(filepath.Separator)))

	data, err := os.ReadFile(store.Path(handle))
	require.NoError(t, err)
	assert.Equal(t, "not really a png", string(data))

	require.NoError(t, store.Delete(handle))
	_, err = os.Stat(store.Path(handle))
	assert.True(t, os.IsNotExist(err))

	// Deleting again must stay silent.
	assert.NoError(t, store.Delete(handle))
	assert.NoError(t, store.Delete(""))
}

func TestStoreSaveUniqueNames(t *testing.T) {
	store, err := media.NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save("photo.png", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save("photo.png", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestNormalizePNGPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg bytes"), 0o644))

	out, err := media.NormalizePNG(path)
	require.NoError(t, err)
	assert.Equal(t, path, out)
}

func TestNormalizePNGConvertsWebp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.webp")
	require.NoError(t, os.WriteFile(path, webpFixture(), 0o644))

	out, err := media.NormalizePNG(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "photo.png"), out)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())

	// The stored original is left in place.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNormalizePNGMissingWebp(t *testing.T) {
	_, err := media.NormalizePNG(filepath.Join(t.TempDir(), "missing.webp"))
	assert.Error(t, err)
}
