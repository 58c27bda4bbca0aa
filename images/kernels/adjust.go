// Package kernels - pixel-level transforms over an images.PixelBuffer:
// brightness, contrast, box blur, alpha compositing, and resampling.
package kernels

import (
	"github.com/chewxy/math32"

	"github.com/rasterlab/go-raster/images"
)

// Brightness scales each color channel by factor, rounding half-up and
// clamping to [0, 255]. Alpha is left untouched.
func Brightness(buf *images.PixelBuffer, factor float32) {
	for i := range buf.Pix {
		p := &buf.Pix[i]
		p.R = scaleChannel(p.R, factor)
		p.G = scaleChannel(p.G, factor)
		p.B = scaleChannel(p.B, factor)
	}
}

// Contrast adjusts each color channel around the midpoint: the channel is
// normalized to [0, 1], stretched by factor about 0.5, clamped, and scaled
// back with half-up rounding. Alpha is left untouched.
func Contrast(buf *images.PixelBuffer, factor float32) {
	for i := range buf.Pix {
		p := &buf.Pix[i]
		p.R = stretchChannel(p.R, factor)
		p.G = stretchChannel(p.G, factor)
		p.B = stretchChannel(p.B, factor)
	}
}

func scaleChannel(v uint8, factor float32) uint8 {
	return clamp255(math32.Floor(float32(v)*factor + 0.5))
}

func stretchChannel(v uint8, factor float32) uint8 {
	n := (float32(v)/255.0-0.5)*factor + 0.5
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return uint8(math32.Floor(n*255.0 + 0.5))
}

func clamp255(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
