// Package images - in-memory raster image container with overflow-checked
// sizing and bounds-checked pixel access. A PixelBuffer is the unit of work
// for every codec and transform in this module.
package images

import (
	"image"
	"image/color"
)

// Pixel is one RGBA sample with 8 bits per channel. Alpha is straight
// (not premultiplied).
type Pixel struct {
	R, G, B, A uint8
}

// PixelBuffer holds a row-major pixel array of exactly Width*Height
// elements. It is the sole owner of its storage; codecs return a fully
// populated buffer or an error, never a partial one.
type PixelBuffer struct {
	// Width is the number of columns. Always > 0 after construction.
	Width int
	// Height is the number of rows. Always > 0 after construction.
	Height int
	// Pix holds the pixels in row-major order: Pix[y*Width+x].
	Pix []Pixel
}

// New allocates a buffer with the given dimensions.
//
// Returns:
// - ErrEmptyImage if width or height is not positive.
// - ErrDimensionTooLarge if width*height overflows the addressable range.
func New(width, height int) (*PixelBuffer, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	n, _ := CheckedMul(width, height)
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]Pixel, n),
	}, nil
}

// ValidateDimensions checks a width/height pair against the construction
// rules of New without allocating.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrEmptyImage
	}
	n, err := CheckedMul(width, height)
	if err != nil {
		return err
	}
	// Each pixel occupies four bytes; reject sizes whose allocation in
	// bytes would overflow even when the element count does not.
	_, err = CheckedMul(n, 4)
	return err
}

// index computes y*Width+x with checked arithmetic.
func (p *PixelBuffer) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return 0, ErrOutOfBounds
	}
	i, err := CheckedMul(y, p.Width)
	if err != nil {
		return 0, err
	}
	return CheckedAdd(i, x)
}

// Get returns the pixel at (x, y), or ErrOutOfBounds.
func (p *PixelBuffer) Get(x, y int) (Pixel, error) {
	i, err := p.index(x, y)
	if err != nil {
		return Pixel{}, err
	}
	return p.Pix[i], nil
}

// Set stores a pixel at (x, y), or fails with ErrOutOfBounds.
func (p *PixelBuffer) Set(x, y int, px Pixel) error {
	i, err := p.index(x, y)
	if err != nil {
		return err
	}
	p.Pix[i] = px
	return nil
}

// Fill broadcasts one color to every pixel.
func (p *PixelBuffer) Fill(px Pixel) {
	for i := range p.Pix {
		p.Pix[i] = px
	}
}

// Clone returns an independent copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	dup := &PixelBuffer{
		Width:  p.Width,
		Height: p.Height,
		Pix:    make([]Pixel, len(p.Pix)),
	}
	copy(dup.Pix, p.Pix)
	return dup
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At implements image.Image. Out-of-range coordinates read as transparent
// black, matching the stdlib convention.
func (p *PixelBuffer) At(x, y int) color.Color {
	px, err := p.Get(x, y)
	if err != nil {
		return color.NRGBA{}
	}
	return color.NRGBA{R: px.R, G: px.G, B: px.B, A: px.A}
}

// FromImage converts any image.Image into a PixelBuffer, normalizing to
// straight-alpha RGBA.
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	buf, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Pix[i] = Pixel{R: c.R, G: c.G, B: c.B, A: c.A}
			i++
		}
	}
	return buf, nil
}
