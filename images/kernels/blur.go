package kernels

import "github.com/rasterlab/go-raster/images"

// BoxBlur replaces each pixel with the mean of its 3x3 neighborhood,
// counting only in-bounds neighbors, so edge and corner pixels average
// fewer samples. There is no edge replication or wraparound.
//
// The sweep reads from a snapshot copy taken before any write, so later
// pixels never see already-blurred neighbors. Output alpha is forced to
// 255.
func BoxBlur(buf *images.PixelBuffer) {
	src := buf.Clone()
	w, h := buf.Width, buf.Height

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sumR, sumG, sumB, count uint32
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					p := src.Pix[ny*w+nx]
					sumR += uint32(p.R)
					sumG += uint32(p.G)
					sumB += uint32(p.B)
					count++
				}
			}
			// count is at least 1 (the pixel itself). Round half-up.
			buf.Pix[y*w+x] = images.Pixel{
				R: uint8((sumR + count/2) / count),
				G: uint8((sumG + count/2) / count),
				B: uint8((sumB + count/2) / count),
				A: 255,
			}
		}
	}
}
