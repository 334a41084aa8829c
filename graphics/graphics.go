/*
Package graphics holds decoded raster images and the geometry that places
them on a grid of character cells.

A Raster never changes after construction and may be read from any number
of goroutines. Drawing goes through a Rasterizer, which is bound to one
rendering context and must only be used from the goroutine that owns it.
*/
package graphics

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEmptyRaster = errors.New("graphics: raster has no pixels")
)

var lastID atomic.Uint64

// NextID returns a process-wide unique raster id. Ids start at 1.
func NextID() uint64 { return lastID.Add(1) }

// Raster is a decoded image: width*height RGB triplets, top row first.
type Raster struct {
	id         uint64
	width      int
	height     int
	cellHeight int
	rgb        []byte
}

// NewRaster takes ownership of rgb. A buffer that does not hold exactly
// width*height*3 bytes is copied into one that does.
func NewRaster(id uint64, width, height, cellHeight int, rgb []byte) *Raster {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	if size := width * height * 3; len(rgb) != size {
		buf := make([]byte, size)
		copy(buf, rgb)
		rgb = buf
	}
	return &Raster{
		id:         id,
		width:      width,
		height:     height,
		cellHeight: cellHeight,
		rgb:        rgb,
	}
}

func (raster *Raster) ID() uint64 { return raster.id }
func (raster *Raster) Width() int { return raster.width }
func (raster *Raster) Height() int { return raster.height }

// CellHeight is the cell height in pixels when the raster was placed.
func (raster *Raster) CellHeight() int { return raster.cellHeight }

// Pix returns the RGB buffer. Callers must not modify it.
func (raster *Raster) Pix() []byte { return raster.rgb }

func (raster *Raster) Empty() bool { return raster.width == 0 || raster.height == 0 }
