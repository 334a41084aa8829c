package graphics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIDUnique(t *testing.T) {
	const n = 64
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ids <- NextID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool)
	for id := range ids {
		assert.NotZero(t, id)
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestNewRasterKeepsBuffer(t *testing.T) {
	rgb := make([]byte, 2*3*3)
	raster := NewRaster(9, 2, 3, 20, rgb)
	assert.Equal(t, uint64(9), raster.ID())
	assert.Equal(t, 20, raster.CellHeight())
	assert.Same(t, &rgb[0], &raster.Pix()[0])
	assert.False(t, raster.Empty())
}

func TestNewRasterResizesBuffer(t *testing.T) {
	raster := NewRaster(1, 2, 2, 6, []byte{1, 2, 3})
	assert.Equal(t, []byte{1, 2, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0}, raster.Pix())

	raster = NewRaster(1, -1, 4, 6, []byte{1, 2, 3})
	assert.True(t, raster.Empty())
	assert.Empty(t, raster.Pix())
}
