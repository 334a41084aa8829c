package sixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cam-per/sixel/graphics"
)

func TestDecodeAndMapFirstCell(t *testing.T) {
	decoder := decodeString(t, `"1;1;6;6#0;2;100;0;0!6~`)
	raster := decoder.Raster(graphics.NextID(), 6)

	require.Equal(t, 6, raster.Width())
	require.Equal(t, 6, raster.Height())
	pix := raster.Pix()
	for i := 0; i < len(pix); i += 3 {
		require.Equal(t, []byte{255, 0, 0}, pix[i:i+3], "pixel %d", i/3)
	}

	size := graphics.SizeInfo{CellWidth: 6, CellHeight: 6, Width: 480, Height: 144}
	quad := graphics.MapCell(raster, 0, 0, 0, 0, size)

	const delta = 1e-6
	topLeft, bottomRight := quad.TopLeft(), quad.BottomRight()
	assert.InDelta(t, -1, topLeft.X, delta)
	assert.InDelta(t, -1, topLeft.Y, delta)
	assert.InDelta(t, -1+12.0/480, bottomRight.X, delta)
	assert.InDelta(t, -1+12.0/144, bottomRight.Y, delta)

	assert.InDelta(t, 0, topLeft.TX, delta)
	assert.InDelta(t, 0, topLeft.TY, delta)
	assert.InDelta(t, 1, bottomRight.TX, delta)
	assert.InDelta(t, 1, bottomRight.TY, delta)
}
