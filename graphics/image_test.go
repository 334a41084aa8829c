package graphics

import (
	"bytes"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker() *Raster {
	rgb := []byte{
		255, 0, 0, 0, 255, 0,
		0, 0, 255, 255, 255, 255,
	}
	return NewRaster(NextID(), 2, 2, 6, rgb)
}

func TestRasterImage(t *testing.T) {
	img := checker().Image()
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 1))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(1, 1))
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, checker()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 1).RGBA()
	assert.Equal(t, []uint32{0, 0, 0xffff}, []uint32{r, g, b})
}

func TestEncodeGIF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGIF(&buf, checker()))

	img, err := gif.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestEncodeEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, EncodePNG(&buf, blank(0, 3)), ErrEmptyRaster)
	assert.ErrorIs(t, EncodeGIF(&buf, blank(0, 3)), ErrEmptyRaster)
}
