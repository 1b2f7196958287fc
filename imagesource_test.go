package zxwitness_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zxwitness "github.com/ericlevine/zxwitness"
	"github.com/ericlevine/zxwitness/bitutil"
)

func TestNewLuminanceSource(t *testing.T) {
	luma := []byte{1, 2, 3, 4, 5, 6}
	src, err := zxwitness.NewLuminanceSource(luma, 3, 2)
	require.NoError(t, err)
	luma[0] = 99

	assert.Equal(t, 3, src.Width())
	assert.Equal(t, 2, src.Height())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, src.Matrix())
	assert.Equal(t, []byte{4, 5, 6}, src.Row(1, nil))
	assert.Nil(t, src.Row(2, nil))
	assert.Nil(t, src.Row(-1, nil))
}

func TestNewLuminanceSourceSizeMismatch(t *testing.T) {
	_, err := zxwitness.NewLuminanceSource([]byte{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, zxwitness.ErrInvalidDimensions)
	_, err = zxwitness.NewLuminanceSource(nil, -1, 0)
	assert.ErrorIs(t, err, zxwitness.ErrInvalidDimensions)
}

func TestLuminanceSourceColumn(t *testing.T) {
	src, err := zxwitness.NewLuminanceSource([]byte{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, []byte{1, 4}, src.Column(0, nil))
	assert.Equal(t, []byte{3, 6}, src.Column(2, nil))
	assert.Nil(t, src.Column(3, nil))
	assert.Nil(t, src.Column(-1, nil))

	buf := make([]byte, 8)
	col := src.Column(1, buf)
	assert.Equal(t, []byte{2, 5}, col)
	assert.Same(t, &buf[0], &col[0], "large enough buffer is reused")
}

func TestMatrixIsCopy(t *testing.T) {
	src, err := zxwitness.NewLuminanceSource([]byte{7, 8}, 2, 1)
	require.NoError(t, err)
	m := src.Matrix()
	m[0] = 0
	assert.Equal(t, []byte{7, 8}, src.Matrix())
}

func TestRotateCounterClockwise(t *testing.T) {
	src, err := zxwitness.NewLuminanceSource([]byte{
		1, 2, 3,
		4, 5, 6,
	}, 3, 2)
	require.NoError(t, err)

	rot := src.RotateCounterClockwise()
	assert.Equal(t, 2, rot.Width())
	assert.Equal(t, 3, rot.Height())
	assert.Equal(t, []byte{
		3, 6,
		2, 5,
		1, 4,
	}, rot.Matrix())
}

func TestNewImageLuminanceSource(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{A: 255})
	img.Set(0, 1, color.NRGBA{R: 255, A: 255})
	// (1, 1) stays fully transparent.

	src := zxwitness.NewImageLuminanceSource(img)
	assert.Equal(t, []byte{255, 0, 76, 255}, src.Matrix())
}

func TestNewGrayImageLuminanceSourceSubImage(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = byte(i)
	}
	sub := gray.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	src := zxwitness.NewImageLuminanceSource(sub)
	assert.Equal(t, 2, src.Width())
	assert.Equal(t, 2, src.Height())
	assert.Equal(t, []byte{5, 6, 9, 10}, src.Matrix())
}

func TestBitMatrixToImage(t *testing.T) {
	bm := bitutil.NewBitMatrix(2, 1)
	bm.Set(0, 0)
	img := zxwitness.BitMatrixToImage(bm)
	assert.Equal(t, uint8(0), img.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(1, 0).Y)

	round := zxwitness.NewGrayImageLuminanceSource(img)
	assert.Equal(t, []byte{0, 255}, round.Matrix())
}

func TestLineOrientationString(t *testing.T) {
	assert.Equal(t, "row", zxwitness.LineRow.String())
	assert.Equal(t, "column", zxwitness.LineColumn.String())
	assert.Equal(t, "unknown", zxwitness.LineOrientation(7).String())
}
