package images

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New(0, 10)
	assert.ErrorIs(t, err, ErrEmptyImage, "zero width should be rejected")

	_, err = New(10, 0)
	assert.ErrorIs(t, err, ErrEmptyImage, "zero height should be rejected")

	_, err = New(-1, 10)
	assert.ErrorIs(t, err, ErrEmptyImage, "negative width should be rejected")

	_, err = New(math.MaxInt, 2)
	assert.ErrorIs(t, err, ErrDimensionTooLarge, "element count overflow should be rejected")

	// Element count fits but the byte size (4 bytes per pixel) does not.
	_, err = New(math.MaxInt/2, 1)
	assert.ErrorIs(t, err, ErrDimensionTooLarge, "byte size overflow should be rejected")
}

func TestFillThenGet(t *testing.T) {
	buf, err := New(7, 5)
	require.NoError(t, err)
	require.Len(t, buf.Pix, 35)

	c := Pixel{R: 12, G: 34, B: 56, A: 78}
	buf.Fill(c)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			got, err := buf.Get(x, y)
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	}
}

func TestGetSetBounds(t *testing.T) {
	buf, err := New(4, 3)
	require.NoError(t, err)

	cases := []struct{ x, y int }{
		{4, 0}, {0, 3}, {4, 3}, {-1, 0}, {0, -1}, {100, 100},
	}
	for _, c := range cases {
		_, err := buf.Get(c.x, c.y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "Get(%d,%d)", c.x, c.y)
		err = buf.Set(c.x, c.y, Pixel{})
		assert.ErrorIs(t, err, ErrOutOfBounds, "Set(%d,%d)", c.x, c.y)
	}

	require.NoError(t, buf.Set(3, 2, Pixel{R: 9}))
	got, err := buf.Get(3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), got.R)
}

func TestRowMajorLayout(t *testing.T) {
	buf, err := New(3, 2)
	require.NoError(t, err)
	require.NoError(t, buf.Set(2, 1, Pixel{R: 1}))
	assert.Equal(t, uint8(1), buf.Pix[1*3+2].R, "index must be y*width+x")
}

func TestImageInterface(t *testing.T) {
	buf, err := New(2, 2)
	require.NoError(t, err)
	buf.Fill(Pixel{R: 10, G: 20, B: 30, A: 40})

	assert.Equal(t, 2, buf.Bounds().Dx())
	assert.Equal(t, 2, buf.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 40}, buf.At(1, 1))
	assert.Equal(t, color.NRGBA{}, buf.At(5, 5), "out-of-range At reads as zero")

	round, err := FromImage(buf)
	require.NoError(t, err)
	assert.Equal(t, buf.Pix, round.Pix)
}

func TestClone(t *testing.T) {
	buf, err := New(2, 1)
	require.NoError(t, err)
	buf.Fill(Pixel{R: 5})

	dup := buf.Clone()
	require.NoError(t, dup.Set(0, 0, Pixel{R: 99}))
	got, err := buf.Get(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), got.R, "clone must not alias the original")
}

func TestCheckedArithmetic(t *testing.T) {
	n, err := CheckedMul(1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000000, n)

	_, err = CheckedMul(math.MaxInt, 2)
	assert.ErrorIs(t, err, ErrDimensionTooLarge)

	n, err = CheckedAdd(math.MaxInt-1, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, n)

	_, err = CheckedAdd(math.MaxInt, 1)
	assert.ErrorIs(t, err, ErrDimensionTooLarge)
}
