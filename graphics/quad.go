package graphics

// SizeInfo describes the drawing surface in pixels.
type SizeInfo struct {
	CellWidth  float32
	CellHeight float32
	Width      float32
	Height     float32
}

// Vertex pairs a position in normalized device coordinates (-1 to 1, y
// growing downwards) with a texture coordinate (0 to 1).
type Vertex struct {
	X, Y   float32
	TX, TY float32
}

// Quad is two triangles: top-left, bottom-left, bottom-right, then
// top-left, bottom-right, top-right.
type Quad [6]Vertex

func (quad Quad) TopLeft() Vertex     { return quad[0] }
func (quad Quad) BottomLeft() Vertex  { return quad[1] }
func (quad Quad) BottomRight() Vertex { return quad[2] }
func (quad Quad) TopRight() Vertex    { return quad[5] }

// MapCell returns the quad covering the part of cell (line, column) that
// shows raster. startColumn is the column the raster was placed at and
// offsetY the raster's row index for this line, both in cells. The texture
// origin is relative to startColumn while horizontal coverage is measured
// from the absolute column. Edge cells are clipped to the pixels the image
// has; a negative coverage falls back to a full cell. An empty raster yields a zero quad.
func MapCell(raster *Raster, line, column, startColumn, offsetY int, size SizeInfo) Quad {
	if raster.Empty() || size.Width == 0 || size.Height == 0 {
		return Quad{}
	}

	imageWidth := float32(raster.Width())
	imageHeight := float32(raster.Height())
	relColumn := column - startColumn

	left := float32(column) * size.CellWidth
	top := float32(line) * size.CellHeight
	texLeft := float32(relColumn) * size.CellWidth / imageWidth
	texTop := float32(offsetY) * size.CellHeight / imageHeight

	width := coverage(column, size.CellWidth, imageWidth)
	height := coverage(offsetY, size.CellHeight, imageHeight)

	x0, y0 := normalize(left, size.Width), normalize(top, size.Height)
	x1, y1 := normalize(left+width, size.Width), normalize(top+height, size.Height)
	tx1 := texLeft + width/imageWidth
	ty1 := texTop + height/imageHeight

	topLeft := Vertex{X: x0, Y: y0, TX: texLeft, TY: texTop}
	bottomLeft := Vertex{X: x0, Y: y1, TX: texLeft, TY: ty1}
	bottomRight := Vertex{X: x1, Y: y1, TX: tx1, TY: ty1}
	topRight := Vertex{X: x1, Y: y0, TX: tx1, TY: texTop}

	return Quad{topLeft, bottomLeft, bottomRight, topLeft, bottomRight, topRight}
}

// coverage is how many pixels of the cell at index i the image fills along
// one axis. A cell wholly past the image edge counts as fully covered.
func coverage(i int, cell, extent float32) float32 {
	overflow := float32(i+1)*cell - extent
	if overflow < 0 {
		return cell
	}
	cov := cell - overflow
	if cov < 0 {
		cov = cell
	}
	return cov
}

func normalize(v, dimension float32) float32 {
	return 2*v/dimension - 1
}
