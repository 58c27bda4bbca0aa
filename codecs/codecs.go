// Package codecs - extension-based routing to the PPM, BMP, and PNG
// codecs. This is the surface a command-line wrapper consumes; everything
// else in the module is reachable through Decode/Encode and Load/Save.
package codecs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/codecs/bmp"
	"github.com/rasterlab/go-raster/codecs/png"
	"github.com/rasterlab/go-raster/codecs/ppm"
	"github.com/rasterlab/go-raster/images"
)

// Decode routes r to the codec matching ext. Extensions are
// case-sensitive; ".jpg" and ".jpeg" hit the JPEG stub, which always
// fails, and any other extension fails with ErrUnsupportedFormat.
func Decode(r io.Reader, ext string) (*images.PixelBuffer, error) {
	switch ext {
	case ".ppm":
		return ppm.Decode(r)
	case ".bmp":
		return bmp.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return decodeJPEG(r)
	default:
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "no codec for extension %q", ext)
	}
}

// Encode routes buf to the codec matching ext, with the same extension
// rules as Decode.
func Encode(w io.Writer, buf *images.PixelBuffer, ext string) error {
	switch ext {
	case ".ppm":
		return ppm.Encode(w, buf)
	case ".bmp":
		return bmp.Encode(w, buf)
	case ".png":
		return png.Encode(w, buf)
	case ".jpg", ".jpeg":
		return encodeJPEG(w, buf)
	default:
		return errors.Wrapf(images.ErrUnsupportedFormat, "no codec for extension %q", ext)
	}
}

// decodeJPEG is a stub; JPEG input is always rejected.
func decodeJPEG(io.Reader) (*images.PixelBuffer, error) {
	return nil, errors.Wrap(images.ErrUnsupportedFormat, "jpeg decoding is not implemented")
}

// encodeJPEG is a stub; JPEG output is always rejected.
func encodeJPEG(io.Writer, *images.PixelBuffer) error {
	return errors.Wrap(images.ErrUnsupportedFormat, "jpeg encoding is not implemented")
}

// Load opens path and decodes it according to its extension.
func Load(path string) (*images.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return Decode(f, filepath.Ext(path))
}

// Save encodes buf to path according to its extension. The file is not
// left behind when encoding fails.
func Save(path string, buf *images.PixelBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Encode(f, buf, filepath.Ext(path)); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
