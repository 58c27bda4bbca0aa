package images

import "errors"

// Sentinel errors shared by the pixel buffer and every codec. Codecs wrap
// these with call-site context; callers match with errors.Is.
var (
	// ErrEmptyImage indicates a zero width or height.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrDimensionTooLarge indicates width*height (or the derived byte
	// size) does not fit the platform's addressable range.
	ErrDimensionTooLarge = errors.New("image dimensions too large")

	// ErrOutOfBounds indicates a pixel access outside [0,w) x [0,h).
	ErrOutOfBounds = errors.New("pixel coordinates out of bounds")

	// ErrUnexpectedEOF indicates truncated input.
	ErrUnexpectedEOF = errors.New("unexpected end of data")

	// ErrInvalidFormat indicates structurally malformed input: bad magic,
	// bad checksum, or a size that contradicts the header.
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrUnsupportedFormat indicates well-formed input outside the
	// supported feature subset.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrOutOfMemory indicates a refusal to allocate an unreasonable
	// amount of memory for a single decode.
	ErrOutOfMemory = errors.New("allocation too large")
)
