// Package bmp - 24-bit uncompressed BMP (BITMAPINFOHEADER) decoding and
// encoding.
package bmp

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/codecs/binio"
	"github.com/rasterlab/go-raster/images"
)

const (
	fileHeaderSize = 14
	infoHeaderSize = 40
	pixelOffset    = fileHeaderSize + infoHeaderSize

	// 2835 pixels per meter is approximately 72 DPI.
	pixelsPerMeter = 2835
)

// Decode reads a 24-bit uncompressed BMP with a 40-byte BITMAPINFOHEADER.
// A negative header height means top-down row order; pixels are normalized
// to top-down in memory either way. Alpha is fixed to 255.
func Decode(r io.Reader) (*images.PixelBuffer, error) {
	src := binio.NewSource(r)

	sig := make([]byte, 2)
	if err := src.ReadExact(sig); err != nil {
		return nil, err
	}
	if sig[0] != 'B' || sig[1] != 'M' {
		return nil, errors.Wrapf(images.ErrInvalidFormat, "signature %q", sig)
	}

	// File size, two reserved fields, and the pixel data offset carry no
	// information we trust; the pixel array location is implied by the
	// fixed 54-byte header layout this decoder supports.
	if err := src.Skip(12); err != nil {
		return nil, err
	}

	dibSize, err := src.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	if dibSize != infoHeaderSize {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "DIB header size %d", dibSize)
	}

	width, err := src.ReadInt32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	rawHeight, err := src.ReadInt32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	topDown := rawHeight < 0
	height := rawHeight
	if topDown {
		height = -rawHeight
	}
	if width <= 0 || height == 0 {
		return nil, errors.Wrap(images.ErrEmptyImage, "bmp dimensions")
	}

	planes, err := src.ReadUint16(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	bpp, err := src.ReadUint16(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	compression, err := src.ReadUint32(binary.LittleEndian)
	if err != nil {
		return nil, err
	}
	if planes != 1 || bpp != 24 || compression != 0 {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat,
			"planes=%d bpp=%d compression=%d", planes, bpp, compression)
	}

	// Image size, resolution, and palette fields are irrelevant for
	// uncompressed 24-bit data.
	if err := src.Skip(20); err != nil {
		return nil, err
	}

	buf, err := images.New(int(width), int(height))
	if err != nil {
		return nil, err
	}
	padded, err := paddedRowSize(int(width))
	if err != nil {
		return nil, err
	}

	row := make([]byte, padded)
	for i := 0; i < int(height); i++ {
		if err := src.ReadExact(row); err != nil {
			return nil, err
		}
		y := i
		if !topDown {
			y = int(height) - 1 - i
		}
		for x := 0; x < int(width); x++ {
			buf.Pix[y*int(width)+x] = images.Pixel{
				B: row[x*3],
				G: row[x*3+1],
				R: row[x*3+2],
				A: 255,
			}
		}
	}
	return buf, nil
}

// Encode writes buf as a bottom-up 24-bit uncompressed BMP. Alpha is
// dropped.
func Encode(w io.Writer, buf *images.PixelBuffer) error {
	padded, err := paddedRowSize(buf.Width)
	if err != nil {
		return err
	}
	dataSize, err := images.CheckedMul(padded, buf.Height)
	if err != nil {
		return err
	}
	fileSize, err := images.CheckedAdd(pixelOffset, dataSize)
	if err != nil {
		return err
	}

	sink := binio.NewSink(w)

	// File header.
	if err := sink.WriteAll([]byte("BM")); err != nil {
		return err
	}
	if err := sink.WriteUint32(uint32(fileSize), binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteUint32(0, binary.LittleEndian); err != nil { // reserved
		return err
	}
	if err := sink.WriteUint32(pixelOffset, binary.LittleEndian); err != nil {
		return err
	}

	// Info header.
	if err := sink.WriteUint32(infoHeaderSize, binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteInt32(int32(buf.Width), binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteInt32(int32(buf.Height), binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteUint16(1, binary.LittleEndian); err != nil { // planes
		return err
	}
	if err := sink.WriteUint16(24, binary.LittleEndian); err != nil { // bits per pixel
		return err
	}
	if err := sink.WriteUint32(0, binary.LittleEndian); err != nil { // compression
		return err
	}
	if err := sink.WriteUint32(uint32(dataSize), binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteInt32(pixelsPerMeter, binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteInt32(pixelsPerMeter, binary.LittleEndian); err != nil {
		return err
	}
	if err := sink.WriteUint32(0, binary.LittleEndian); err != nil { // colors used
		return err
	}
	if err := sink.WriteUint32(0, binary.LittleEndian); err != nil { // important colors
		return err
	}

	// Pixel array, highest-y row first.
	row := make([]byte, padded)
	for y := buf.Height - 1; y >= 0; y-- {
		for x := 0; x < buf.Width; x++ {
			p := buf.Pix[y*buf.Width+x]
			row[x*3] = p.B
			row[x*3+1] = p.G
			row[x*3+2] = p.R
		}
		if err := sink.WriteAll(row); err != nil {
			return err
		}
	}
	return nil
}

// paddedRowSize returns width*3 rounded up to a 4-byte boundary, with
// overflow checking.
func paddedRowSize(width int) (int, error) {
	rowSize, err := images.CheckedMul(width, 3)
	if err != nil {
		return 0, err
	}
	padded, err := images.CheckedAdd(rowSize, 3)
	if err != nil {
		return 0, err
	}
	return padded &^ 3, nil
}
