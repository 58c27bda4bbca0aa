// Package util - filesystem helpers layered on the codec dispatcher.
package util

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/codecs"
	"github.com/rasterlab/go-raster/images"
)

// ImageFile is one decoded image from a directory scan.
type ImageFile struct {
	// Path is the full path the image was loaded from.
	Path string
	// Image is the decoded pixel buffer.
	Image *images.PixelBuffer
}

// LoadDirectoryImageFiles decodes every supported image file (.ppm, .bmp,
// .png) in dir, sorted by filename. Subdirectories and files with other
// extensions are skipped; a file that fails to decode aborts the scan.
func LoadDirectoryImageFiles(dir string) ([]ImageFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read directory %s", dir)
	}

	var loaded []ImageFile
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		switch filepath.Ext(file.Name()) {
		case ".ppm", ".bmp", ".png":
		default:
			continue
		}

		path := filepath.Join(dir, file.Name())
		img, err := codecs.Load(path)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", path)
		}
		loaded = append(loaded, ImageFile{Path: path, Image: img})
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Path < loaded[j].Path
	})
	return loaded, nil
}
