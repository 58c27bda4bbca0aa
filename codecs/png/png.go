// Package png - PNG decoding and encoding for 8-bit depth, color types 0
// (grayscale), 2 (RGB), and 6 (RGBA), without interlacing.
//
// The chunk framing, IHDR validation, and scanline filter reconstruction
// are implemented here; CRC32 and deflate are delegated to hash/crc32 and
// klauspost zlib.
package png

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/codecs/binio"
	"github.com/rasterlab/go-raster/images"
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// PNG color types supported by this codec, with their bytes per pixel at
// bit depth 8.
const (
	colorGray = 0
	colorRGB  = 2
	colorRGBA = 6
)

// Chunk lengths are u31 on the wire.
const maxChunkLength = 0x7fffffff

// chunk is one record of the PNG chunk stream: a 4-byte type tag and its
// payload, with the trailing CRC already verified. Chunks are transient;
// the decoder consumes each one immediately and never retains it.
type chunk struct {
	typ     string
	payload []byte
}

// readChunk reads {length, type, payload, crc} and verifies the CRC over
// type+payload. EOF on the length field means the stream ended between
// chunks without an IEND, which is a structural error rather than
// truncation.
func readChunk(src *binio.Source) (*chunk, error) {
	length, err := src.ReadUint32(binary.BigEndian)
	if err != nil {
		if errors.Is(err, images.ErrUnexpectedEOF) {
			return nil, errors.Wrap(images.ErrInvalidFormat, "missing IEND")
		}
		return nil, err
	}
	if length > maxChunkLength {
		return nil, errors.Wrapf(images.ErrInvalidFormat, "chunk length %d", length)
	}

	typ := make([]byte, 4)
	if err := src.ReadExact(typ); err != nil {
		return nil, err
	}
	payload := make([]byte, length)
	if err := src.ReadExact(payload); err != nil {
		return nil, err
	}
	declared, err := src.ReadUint32(binary.BigEndian)
	if err != nil {
		return nil, err
	}

	crc := crc32.NewIEEE()
	crc.Write(typ)
	crc.Write(payload)
	if crc.Sum32() != declared {
		return nil, errors.Wrapf(images.ErrInvalidFormat, "CRC mismatch in %q chunk", typ)
	}
	return &chunk{typ: string(typ), payload: payload}, nil
}

// header holds the validated IHDR fields the decoder needs.
type header struct {
	width, height int
	bytesPerPixel int
	colorType     byte
}

func parseIHDR(payload []byte) (*header, error) {
	if len(payload) != 13 {
		return nil, errors.Wrapf(images.ErrInvalidFormat, "IHDR length %d", len(payload))
	}
	width := binary.BigEndian.Uint32(payload[0:4])
	height := binary.BigEndian.Uint32(payload[4:8])
	bitDepth := payload[8]
	colorType := payload[9]
	compression := payload[10]
	filterMethod := payload[11]
	interlace := payload[12]

	if bitDepth != 8 {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "bit depth %d", bitDepth)
	}
	if compression != 0 {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "compression method %d", compression)
	}
	if filterMethod != 0 {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "filter method %d", filterMethod)
	}
	if interlace != 0 {
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "interlace method %d", interlace)
	}

	var bpp int
	switch colorType {
	case colorGray:
		bpp = 1
	case colorRGB:
		bpp = 3
	case colorRGBA:
		bpp = 4
	default:
		return nil, errors.Wrapf(images.ErrUnsupportedFormat, "color type %d", colorType)
	}

	if width == 0 || height == 0 {
		return nil, errors.Wrap(images.ErrEmptyImage, "IHDR dimensions")
	}
	if uint64(width) > uint64(maxInt) || uint64(height) > uint64(maxInt) {
		return nil, errors.Wrap(images.ErrDimensionTooLarge, "IHDR dimensions")
	}
	if err := images.ValidateDimensions(int(width), int(height)); err != nil {
		return nil, err
	}
	return &header{
		width:         int(width),
		height:        int(height),
		bytesPerPixel: bpp,
		colorType:     colorType,
	}, nil
}

const maxInt = int(^uint(0) >> 1)

// Decode reads a PNG image. IDAT payloads may span multiple chunks and are
// concatenated in arrival order before inflation; ancillary chunks are
// discarded. Every chunk's CRC is verified.
func Decode(r io.Reader) (*images.PixelBuffer, error) {
	src := binio.NewSource(r)

	sig := make([]byte, len(signature))
	if err := src.ReadExact(sig); err != nil {
		return nil, err
	}
	if !bytes.Equal(sig, signature) {
		return nil, errors.Wrap(images.ErrInvalidFormat, "bad signature")
	}

	var (
		hdr  *header
		idat []byte
	)
loop:
	for {
		ck, err := readChunk(src)
		if err != nil {
			return nil, err
		}
		switch ck.typ {
		case "IHDR":
			if hdr != nil {
				return nil, errors.Wrap(images.ErrInvalidFormat, "duplicate IHDR")
			}
			if hdr, err = parseIHDR(ck.payload); err != nil {
				return nil, err
			}
		case "IDAT":
			if hdr == nil {
				return nil, errors.Wrap(images.ErrInvalidFormat, "IDAT before IHDR")
			}
			if _, err := images.CheckedAdd(len(idat), len(ck.payload)); err != nil {
				return nil, errors.Wrap(images.ErrOutOfMemory, "IDAT accumulation")
			}
			idat = append(idat, ck.payload...)
		case "IEND":
			if hdr == nil {
				return nil, errors.Wrap(images.ErrInvalidFormat, "IEND before IHDR")
			}
			break loop
		default:
			// Ancillary chunk: payload discarded.
		}
	}

	raw, err := inflate(idat)
	if err != nil {
		return nil, err
	}
	return reconstruct(hdr, raw)
}

// inflate decompresses the concatenated IDAT stream.
func inflate(idat []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return nil, errors.Wrap(images.ErrInvalidFormat, "zlib stream")
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(images.ErrInvalidFormat, "inflate")
	}
	return raw, nil
}

// reconstruct unfilters the raw scanlines and expands them into pixels.
func reconstruct(hdr *header, raw []byte) (*images.PixelBuffer, error) {
	rowBytes, err := images.CheckedMul(hdr.width, hdr.bytesPerPixel)
	if err != nil {
		return nil, err
	}
	rowLen, err := images.CheckedAdd(rowBytes, 1)
	if err != nil {
		return nil, err
	}
	expected, err := images.CheckedMul(rowLen, hdr.height)
	if err != nil {
		return nil, err
	}
	if len(raw) != expected {
		return nil, errors.Wrapf(images.ErrInvalidFormat,
			"decompressed size %d, want %d", len(raw), expected)
	}

	buf, err := images.New(hdr.width, hdr.height)
	if err != nil {
		return nil, err
	}

	prev := make([]byte, rowBytes)
	for y := 0; y < hdr.height; y++ {
		row := raw[y*rowLen : (y+1)*rowLen]
		cur := row[1:]
		if err := unfilterRow(row[0], cur, prev, hdr.bytesPerPixel); err != nil {
			return nil, err
		}
		expandRow(buf, hdr, y, cur)
		prev = cur
	}
	return buf, nil
}

// expandRow converts one reconstructed scanline into pixels.
func expandRow(buf *images.PixelBuffer, hdr *header, y int, cur []byte) {
	base := y * hdr.width
	switch hdr.colorType {
	case colorGray:
		for x := 0; x < hdr.width; x++ {
			v := cur[x]
			buf.Pix[base+x] = images.Pixel{R: v, G: v, B: v, A: 255}
		}
	case colorRGB:
		for x := 0; x < hdr.width; x++ {
			buf.Pix[base+x] = images.Pixel{
				R: cur[x*3],
				G: cur[x*3+1],
				B: cur[x*3+2],
				A: 255,
			}
		}
	case colorRGBA:
		for x := 0; x < hdr.width; x++ {
			buf.Pix[base+x] = images.Pixel{
				R: cur[x*4],
				G: cur[x*4+1],
				B: cur[x*4+2],
				A: cur[x*4+3],
			}
		}
	}
}

// Encode writes buf as an 8-bit RGBA PNG: one IHDR, one deflate-compressed
// IDAT with every scanline using filter type None, and an empty IEND.
func Encode(w io.Writer, buf *images.PixelBuffer) error {
	sink := binio.NewSink(w)
	if err := sink.WriteAll(signature); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(buf.Width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(buf.Height))
	ihdr[8] = 8         // bit depth
	ihdr[9] = colorRGBA // color type
	// compression, filter, and interlace methods are all zero.
	if err := writeChunk(sink, "IHDR", ihdr); err != nil {
		return err
	}

	rowLen := 1 + buf.Width*4
	raw := make([]byte, rowLen*buf.Height)
	for y := 0; y < buf.Height; y++ {
		row := raw[y*rowLen : (y+1)*rowLen]
		row[0] = filterNone
		for x := 0; x < buf.Width; x++ {
			p := buf.Pix[y*buf.Width+x]
			row[1+x*4] = p.R
			row[1+x*4+1] = p.G
			row[1+x*4+2] = p.B
			row[1+x*4+3] = p.A
		}
	}

	var compressed bytes.Buffer
	zw, err := zlib.NewWriterLevel(&compressed, zlib.BestSpeed)
	if err != nil {
		return errors.Wrap(err, "deflate init")
	}
	if _, err := zw.Write(raw); err != nil {
		return errors.Wrap(err, "deflate")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "deflate flush")
	}

	if err := writeChunk(sink, "IDAT", compressed.Bytes()); err != nil {
		return err
	}
	return writeChunk(sink, "IEND", nil)
}

// writeChunk emits {length, type, payload, crc32(type+payload)}.
func writeChunk(sink *binio.Sink, typ string, payload []byte) error {
	if err := sink.WriteUint32(uint32(len(payload)), binary.BigEndian); err != nil {
		return err
	}
	if err := sink.WriteAll([]byte(typ)); err != nil {
		return err
	}
	if err := sink.WriteAll(payload); err != nil {
		return err
	}
	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(payload)
	return sink.WriteUint32(crc.Sum32(), binary.BigEndian)
}
