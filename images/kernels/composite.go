package kernels

import "github.com/rasterlab/go-raster/images"

// Composite blends src onto dst at offset (x, y) using straight-alpha
// blending: out = bg*(1-a) + fg*a with a = srcA/255. The destination
// alpha is forced to 255. Source pixels landing outside dst, including
// at negative offsets, are silently skipped.
func Composite(dst, src *images.PixelBuffer, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= dst.Width {
				continue
			}
			fg := src.Pix[sy*src.Width+sx]
			di := dy*dst.Width + dx
			bg := dst.Pix[di]

			a := float32(fg.A) / 255.0
			dst.Pix[di] = images.Pixel{
				R: blendChannel(bg.R, fg.R, a),
				G: blendChannel(bg.G, fg.G, a),
				B: blendChannel(bg.B, fg.B, a),
				A: 255,
			}
		}
	}
}

func blendChannel(bg, fg uint8, a float32) uint8 {
	return uint8(float32(bg)*(1-a) + float32(fg)*a + 0.5)
}
