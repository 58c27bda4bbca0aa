// Package binio - the byte-source/byte-sink layer shared by every codec.
// It wraps an io.Reader or io.Writer with exact-length reads and
// fixed-width integer access with explicit endianness, so the codecs are
// indifferent to whether the destination is a file or an in-memory buffer.
package binio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/rasterlab/go-raster/images"
)

// Source reads from an underlying io.Reader. Short reads surface as
// images.ErrUnexpectedEOF.
type Source struct {
	r   io.Reader
	tmp [4]byte
}

// NewSource wraps r.
func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

// ReadExact fills buf completely or fails.
func (s *Source) ReadExact(buf []byte) error {
	if _, err := io.ReadFull(s.r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrap(images.ErrUnexpectedEOF, "read")
		}
		return errors.Wrap(err, "read")
	}
	return nil
}

// ReadByte returns the next byte.
func (s *Source) ReadByte() (byte, error) {
	if err := s.ReadExact(s.tmp[:1]); err != nil {
		return 0, err
	}
	return s.tmp[0], nil
}

// ReadUint16 reads a fixed-width 16-bit value in the given byte order.
func (s *Source) ReadUint16(order binary.ByteOrder) (uint16, error) {
	if err := s.ReadExact(s.tmp[:2]); err != nil {
		return 0, err
	}
	return order.Uint16(s.tmp[:2]), nil
}

// ReadUint32 reads a fixed-width 32-bit value in the given byte order.
func (s *Source) ReadUint32(order binary.ByteOrder) (uint32, error) {
	if err := s.ReadExact(s.tmp[:4]); err != nil {
		return 0, err
	}
	return order.Uint32(s.tmp[:4]), nil
}

// ReadInt32 reads a signed 32-bit value in the given byte order.
func (s *Source) ReadInt32(order binary.ByteOrder) (int32, error) {
	v, err := s.ReadUint32(order)
	return int32(v), err
}

// Skip discards exactly n bytes.
func (s *Source) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, s.r, int64(n)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrap(images.ErrUnexpectedEOF, "skip")
		}
		return errors.Wrap(err, "skip")
	}
	return nil
}

// Sink writes to an underlying io.Writer.
type Sink struct {
	w   io.Writer
	tmp [4]byte
}

// NewSink wraps w.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// WriteAll writes buf completely or fails.
func (s *Sink) WriteAll(buf []byte) error {
	if _, err := s.w.Write(buf); err != nil {
		return errors.Wrap(err, "write")
	}
	return nil
}

// WriteByte writes one byte.
func (s *Sink) WriteByte(b byte) error {
	s.tmp[0] = b
	return s.WriteAll(s.tmp[:1])
}

// WriteUint16 writes a fixed-width 16-bit value in the given byte order.
func (s *Sink) WriteUint16(v uint16, order binary.ByteOrder) error {
	order.PutUint16(s.tmp[:2], v)
	return s.WriteAll(s.tmp[:2])
}

// WriteUint32 writes a fixed-width 32-bit value in the given byte order.
func (s *Sink) WriteUint32(v uint32, order binary.ByteOrder) error {
	order.PutUint32(s.tmp[:4], v)
	return s.WriteAll(s.tmp[:4])
}

// WriteInt32 writes a signed 32-bit value in the given byte order.
func (s *Sink) WriteInt32(v int32, order binary.ByteOrder) error {
	return s.WriteUint32(uint32(v), order)
}
