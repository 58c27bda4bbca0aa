package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasterlab/go-raster/codecs"
	"github.com/rasterlab/go-raster/images"
)

func TestLoadDirectoryImageFiles(t *testing.T) {
	dir := t.TempDir()

	src, err := images.New(2, 2)
	require.NoError(t, err)
	src.Fill(images.Pixel{R: 10, G: 20, B: 30, A: 255})

	require.NoError(t, codecs.Save(filepath.Join(dir, "b.png"), src))
	require.NoError(t, codecs.Save(filepath.Join(dir, "a.ppm"), src))
	require.NoError(t, codecs.Save(filepath.Join(dir, "c.bmp"), src))
	// Unsupported extension and a subdirectory must both be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	loaded, err := LoadDirectoryImageFiles(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, filepath.Join(dir, "a.ppm"), loaded[0].Path, "sorted by filename")
	assert.Equal(t, filepath.Join(dir, "b.png"), loaded[1].Path)
	assert.Equal(t, filepath.Join(dir, "c.bmp"), loaded[2].Path)

	for _, lf := range loaded {
		assert.Equal(t, 2, lf.Image.Width, "%s", lf.Path)
		assert.Equal(t, 2, lf.Image.Height, "%s", lf.Path)
		p, err := lf.Image.Get(0, 0)
		require.NoError(t, err)
		assert.Equal(t, images.Pixel{R: 10, G: 20, B: 30, A: 255}, p, "%s", lf.Path)
	}
}

func TestLoadDirectoryImageFilesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644))

	_, err := LoadDirectoryImageFiles(dir)
	assert.ErrorIs(t, err, images.ErrInvalidFormat)
}

func TestLoadDirectoryImageFilesMissingDir(t *testing.T) {
	_, err := LoadDirectoryImageFiles(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
