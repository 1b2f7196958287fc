package main

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/zxwitness/internal/log"
	"github.com/ericlevine/zxwitness/witness"
)

// stripes returns a 4x2 image whose columns get brighter left to right.
func stripes() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x, v := range []uint8{0, 100, 128, 255} {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func TestBinarize(t *testing.T) {
	c, err := binarize(stripes(), 128, false)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width())
	assert.Equal(t, 2, c.Height())
	assert.Equal(t, "##..\n##..\n", c.Binary().StringWithChars("#", "."))
	assert.NoError(t, c.Verify(128))
}

func TestBinarizeRotated(t *testing.T) {
	c, err := binarize(stripes(), 128, true)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Width())
	assert.Equal(t, 4, c.Height())
	assert.Equal(t, "..\n..\n##\n##\n", c.Binary().StringWithChars("#", "."))
}

func TestBinarizeEmptyImage(t *testing.T) {
	_, err := binarize(image.NewGray(image.Rect(0, 0, 0, 0)), 128, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no pixels")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(stripes(), in))
	out := filepath.Join(dir, "witness.json")

	require.NoError(t, run(in, options{threshold: 101, out: out, verify: true}))

	c, err := witness.Load(out)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 100, 128, 255, 0, 100, 128, 255}, c.Image())
	assert.Equal(t, "##..\n##..\n", c.Binary().StringWithChars("#", "."))
}

func TestRunWritesPNG(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(stripes(), in))
	out := filepath.Join(dir, "binary.png")

	require.NoError(t, run(in, options{threshold: 128, png: out}))

	img, err := imaging.Open(out)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	for x, want := range []uint32{0, 0, 0xffff, 0xffff} {
		r, _, _, _ := img.At(x, 1).RGBA()
		assert.Equal(t, want, r, "pixel (%d,1)", x)
	}
}

func TestRunPNGUnwritable(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(stripes(), in))

	err := run(in, options{threshold: 128, png: filepath.Join(dir, "missing", "binary.png")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write binarized image")
}

func TestRunResize(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs, "info", "text")
	t.Cleanup(func() { log.SetOutput(&bytes.Buffer{}, "error", "text") })

	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(imaging.New(8, 4, color.White), in))
	out := filepath.Join(dir, "witness.json")

	require.NoError(t, run(in, options{threshold: 128, width: 4, out: out}))

	c, err := witness.Load(out)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Width())
	assert.Equal(t, 2, c.Height())
	assert.Zero(t, c.Binary().Cardinality())
	assert.Contains(t, logs.String(), "binarized image is uniform")
}

func TestRunMissingFile(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "absent.png"), options{threshold: 128})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode image")
}
