package graphics

// Rasterizer is the GPU side of image drawing.
type Rasterizer interface {
	// Upload copies the raster into a texture and returns its handle.
	Upload(raster *Raster) (uint32, error)
	// Draw renders quad sampling texture.
	Draw(size SizeInfo, quad Quad, texture uint32) error
	// Release frees a texture returned by Upload.
	Release(texture uint32)
}

// TextureCache uploads each raster once and remembers its texture by raster
// id. It is not safe for concurrent use; keep it on the rendering goroutine.
type TextureCache struct {
	rasterizer Rasterizer
	textures   map[uint64]uint32
}

func NewTextureCache(rasterizer Rasterizer) *TextureCache {
	return &TextureCache{
		rasterizer: rasterizer,
		textures:   make(map[uint64]uint32),
	}
}

// Texture returns the texture for raster, uploading it on first use.
func (cache *TextureCache) Texture(raster *Raster) (uint32, error) {
	if texture, ok := cache.textures[raster.ID()]; ok {
		return texture, nil
	}
	if raster.Empty() {
		return 0, ErrEmptyRaster
	}
	texture, err := cache.rasterizer.Upload(raster)
	if err != nil {
		return 0, err
	}
	cache.textures[raster.ID()] = texture
	return texture, nil
}

// Lookup returns the texture for id without uploading.
func (cache *TextureCache) Lookup(id uint64) (uint32, bool) {
	texture, ok := cache.textures[id]
	return texture, ok
}

// DrawCell maps one cell of raster and draws it. Empty rasters draw nothing.
func (cache *TextureCache) DrawCell(raster *Raster, line, column, startColumn, offsetY int, size SizeInfo) error {
	if raster.Empty() {
		return nil
	}
	texture, err := cache.Texture(raster)
	if err != nil {
		return err
	}
	quad := MapCell(raster, line, column, startColumn, offsetY, size)
	return cache.rasterizer.Draw(size, quad, texture)
}

// Evict drops and releases the texture for id.
func (cache *TextureCache) Evict(id uint64) {
	texture, ok := cache.textures[id]
	if !ok {
		return
	}
	delete(cache.textures, id)
	cache.rasterizer.Release(texture)
}

// Purge releases every texture.
func (cache *TextureCache) Purge() {
	for id := range cache.textures {
		cache.Evict(id)
	}
}

func (cache *TextureCache) Len() int { return len(cache.textures) }
