package graphics

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
)

const maxGIFColors = 256

// Image converts the raster to an opaque NRGBA image.
func (raster *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, raster.width, raster.height))
	for i, j := 0, 0; i+2 < len(raster.rgb); i, j = i+3, j+4 {
		img.Pix[j+0] = raster.rgb[i+0]
		img.Pix[j+1] = raster.rgb[i+1]
		img.Pix[j+2] = raster.rgb[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// EncodePNG writes raster to w as a PNG.
func EncodePNG(w io.Writer, raster *Raster) error {
	if raster.Empty() {
		return ErrEmptyRaster
	}
	return png.Encode(w, raster.Image())
}

// EncodeGIF writes raster to w as a single frame GIF, reducing it to at
// most 256 colours with a median cut.
func EncodeGIF(w io.Writer, raster *Raster) error {
	if raster.Empty() {
		return ErrEmptyRaster
	}
	m := raster.Image()
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxGIFColors), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	return gif.Encode(w, pm, &gif.Options{NumColors: len(pm.Palette)})
}
