package png

import (
	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/images"
)

// Scanline filter types, as per the PNG spec.
const (
	filterNone    = 0
	filterSub     = 1
	filterUp      = 2
	filterAverage = 3
	filterPaeth   = 4
)

// unfilterRow reconstructs one scanline in place. cur holds the filtered
// bytes of the current row (without the leading filter-type byte), prev
// the reconstructed bytes of the previous row (all zeros for the first
// row). All additions are modulo 256.
func unfilterRow(filterType byte, cur, prev []byte, bytesPerPixel int) error {
	switch filterType {
	case filterNone:
		// Reconstructed bytes equal the raw bytes.
	case filterSub:
		for i := bytesPerPixel; i < len(cur); i++ {
			cur[i] += cur[i-bytesPerPixel]
		}
	case filterUp:
		for i, p := range prev {
			cur[i] += p
		}
	case filterAverage:
		// The leftmost pixel has no left neighbor, so a is zero there.
		for i := 0; i < bytesPerPixel && i < len(cur); i++ {
			cur[i] += prev[i] / 2
		}
		for i := bytesPerPixel; i < len(cur); i++ {
			cur[i] += uint8((int(cur[i-bytesPerPixel]) + int(prev[i])) / 2)
		}
	case filterPaeth:
		for i := 0; i < len(cur); i++ {
			var a, c byte
			if i >= bytesPerPixel {
				a = cur[i-bytesPerPixel]
				c = prev[i-bytesPerPixel]
			}
			cur[i] += paeth(a, prev[i], c)
		}
	default:
		return errors.Wrapf(images.ErrUnsupportedFormat, "scanline filter type %d", filterType)
	}
	return nil
}

// paeth returns whichever of a (left), b (above), or c (above-left) best
// predicts the current byte, per the PNG Paeth heuristic.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
