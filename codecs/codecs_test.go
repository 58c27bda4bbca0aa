package codecs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rasterlab/go-raster/images"
)

func testImage(t *testing.T) *images.PixelBuffer {
	t.Helper()
	buf, err := images.New(4, 2)
	require.NoError(t, err)
	for i := range buf.Pix {
		buf.Pix[i] = images.Pixel{R: uint8(i * 9), G: uint8(i * 5), B: uint8(i * 3), A: 255}
	}
	return buf
}

func TestRoutingRoundTrips(t *testing.T) {
	src := testImage(t)
	for _, ext := range []string{".ppm", ".bmp", ".png"} {
		var out bytes.Buffer
		require.NoError(t, Encode(&out, src, ext), "encode %s", ext)

		got, err := Decode(&out, ext)
		require.NoError(t, err, "decode %s", ext)
		assert.Equal(t, src.Width, got.Width, "%s width", ext)
		assert.Equal(t, src.Height, got.Height, "%s height", ext)
		for i := range src.Pix {
			assert.Equal(t, src.Pix[i].R, got.Pix[i].R, "%s red %d", ext, i)
			assert.Equal(t, src.Pix[i].G, got.Pix[i].G, "%s green %d", ext, i)
			assert.Equal(t, src.Pix[i].B, got.Pix[i].B, "%s blue %d", ext, i)
		}
	}
}

func TestUnknownExtensionsRejected(t *testing.T) {
	for _, ext := range []string{".gif", ".webp", ".tiff", "", ".PNG", ".Ppm"} {
		_, err := Decode(bytes.NewReader(nil), ext)
		assert.ErrorIs(t, err, images.ErrUnsupportedFormat, "decode %q", ext)

		err = Encode(&bytes.Buffer{}, testImage(t), ext)
		assert.ErrorIs(t, err, images.ErrUnsupportedFormat, "encode %q", ext)
	}
}

func TestJPEGStubAlwaysFails(t *testing.T) {
	for _, ext := range []string{".jpg", ".jpeg"} {
		_, err := Decode(bytes.NewReader([]byte{0xFF, 0xD8}), ext)
		assert.ErrorIs(t, err, images.ErrUnsupportedFormat, "decode %q", ext)

		err = Encode(&bytes.Buffer{}, testImage(t), ext)
		assert.ErrorIs(t, err, images.ErrUnsupportedFormat, "encode %q", ext)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage(t)

	for _, name := range []string{"img.ppm", "img.bmp", "img.png"} {
		path := filepath.Join(dir, name)
		require.NoError(t, Save(path, src), name)

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, src.Width, got.Width, name)
		assert.Equal(t, src.Height, got.Height, name)
	}
}

func TestSaveUnknownExtensionLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.gif")
	err := Save(path, testImage(t))
	assert.ErrorIs(t, err, images.ErrUnsupportedFormat)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed save must not leave a file behind")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
