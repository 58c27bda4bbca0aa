// Package ppm - binary PPM (P6) decoding and encoding.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/codecs/binio"
	"github.com/rasterlab/go-raster/images"
)

// ErrUnsupportedMaxValue is returned for well-formed P6 headers whose
// maxval is anything other than 255. It matches
// images.ErrUnsupportedFormat under errors.Is.
var ErrUnsupportedMaxValue = errors.Wrap(images.ErrUnsupportedFormat, "maxval must be 255")

// Decode reads a binary P6 image. The header is four whitespace-delimited
// tokens (magic, width, height, maxval); '#' starts a comment running to
// end of line and counts as whitespace. The raw RGB triples begin
// immediately after the single whitespace byte that terminates maxval.
// Alpha is fixed to 255.
func Decode(r io.Reader) (*images.PixelBuffer, error) {
	br := bufio.NewReader(r)

	magic, err := nextToken(br)
	if err != nil {
		return nil, err
	}
	if magic != "P6" {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "magic %q", magic)
	}

	width, err := intToken(br, "width")
	if err != nil {
		return nil, err
	}
	height, err := intToken(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := intToken(br, "maxval")
	if err != nil {
		return nil, err
	}
	if maxval != 255 {
		return nil, ErrUnsupportedMaxValue
	}

	buf, err := images.New(width, height)
	if err != nil {
		return nil, err
	}

	src := binio.NewSource(br)
	row := make([]byte, width*3)
	for y := 0; y < height; y++ {
		if err := src.ReadExact(row); err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			buf.Pix[y*width+x] = images.Pixel{
				R: row[x*3],
				G: row[x*3+1],
				B: row[x*3+2],
				A: 255,
			}
		}
	}
	return buf, nil
}

// Encode writes buf as binary P6: the ASCII header "P6\n{w} {h}\n255\n"
// followed by raw RGB triples in row-major order. Alpha is dropped.
func Encode(w io.Writer, buf *images.PixelBuffer) error {
	sink := binio.NewSink(w)
	header := fmt.Sprintf("P6\n%d %d\n255\n", buf.Width, buf.Height)
	if err := sink.WriteAll([]byte(header)); err != nil {
		return err
	}

	row := make([]byte, buf.Width*3)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			p := buf.Pix[y*buf.Width+x]
			row[x*3] = p.R
			row[x*3+1] = p.G
			row[x*3+2] = p.B
		}
		if err := sink.WriteAll(row); err != nil {
			return err
		}
	}
	return nil
}

// isSpace reports PPM header whitespace: space, tab, CR, LF.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// nextToken skips whitespace and comments, then accumulates bytes up to
// and including the single whitespace delimiter that terminates the
// token. The delimiter is consumed so raw pixel data can follow directly.
func nextToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", errors.Wrap(images.ErrUnexpectedEOF, "header")
			}
			return "", errors.Wrap(err, "header")
		}
		switch {
		case b == '#':
			// A comment behaves like whitespace: it ends any token in
			// progress.
			if err := skipComment(br); err != nil {
				return "", err
			}
			if len(tok) > 0 {
				return string(tok), nil
			}
		case isSpace(b):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}

func skipComment(br *bufio.Reader) error {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return errors.Wrap(images.ErrUnexpectedEOF, "comment")
			}
			return errors.Wrap(err, "comment")
		}
		if b == '\n' {
			return nil
		}
	}
}

func intToken(br *bufio.Reader, field string) (int, error) {
	tok, err := nextToken(br)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(images.ErrInvalidFormat, "%s %q is not a decimal number", field, tok)
	}
	return v, nil
}
