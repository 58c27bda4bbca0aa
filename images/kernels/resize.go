package kernels

import (
	"github.com/nfnt/resize"
	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/images"
)

// ResampleFilter selects the resampling algorithm used by Resize.
type ResampleFilter int

const (
	// NearestNeighborFilter is the fastest and lowest quality.
	NearestNeighborFilter ResampleFilter = iota
	// BilinearFilter is fast with good quality.
	BilinearFilter
	// BicubicFilter is slower with better quality.
	BicubicFilter
	// LanczosFilter (a=3) is the slowest and highest quality.
	LanczosFilter
)

func (f ResampleFilter) interpolation() resize.InterpolationFunction {
	switch f {
	case BilinearFilter:
		return resize.Bilinear
	case BicubicFilter:
		return resize.Bicubic
	case LanczosFilter:
		return resize.Lanczos3
	default:
		return resize.NearestNeighbor
	}
}

// Resize resamples buf to width x height and returns a new buffer. The
// source is left unmodified. Alpha is resampled along with the color
// channels.
func Resize(buf *images.PixelBuffer, width, height int, filter ResampleFilter) (*images.PixelBuffer, error) {
	if err := images.ValidateDimensions(width, height); err != nil {
		return nil, errors.Wrap(err, "resize target")
	}
	if width == buf.Width && height == buf.Height {
		return buf.Clone(), nil
	}
	out := resize.Resize(uint(width), uint(height), buf, filter.interpolation())
	res, err := images.FromImage(out)
	if err != nil {
		return nil, errors.Wrap(err, "resize result")
	}
	return res, nil
}
