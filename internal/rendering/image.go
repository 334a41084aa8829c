package rendering

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/cam-per/sixel/graphics"
)

const (
	imageProgram = "img"

	vertexFloats = 4
	vertexStride = vertexFloats * 4
)

var (
	ErrNoProgram = errors.New("rendering: image program not compiled")
)

var _ graphics.Rasterizer = (*ImageRenderer)(nil)

// ImageRenderer draws raster cells as textured quads. It must be created
// and used on the goroutine that owns the GL context.
type ImageRenderer struct {
	program uint32
	sampler int32
	vao     uint32
	vbo     uint32
}

// NewImageRenderer needs shaders to hold the compiled "img" program.
func NewImageRenderer(shaders *Shaders) (*ImageRenderer, error) {
	program, ok := shaders.Program(imageProgram)
	if !ok {
		return nil, ErrNoProgram
	}

	renderer := &ImageRenderer{
		program: program,
		sampler: gl.GetUniformLocation(program, gl.Str("image\x00")),
	}

	gl.GenVertexArrays(1, &renderer.vao)
	gl.GenBuffers(1, &renderer.vbo)

	gl.BindVertexArray(renderer.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, renderer.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(graphics.Quad{})*vertexStride, nil, gl.STREAM_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, vertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, vertexStride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return renderer, nil
}

// Upload copies the RGB pixels of raster into a new texture.
func (renderer *ImageRenderer) Upload(raster *graphics.Raster) (uint32, error) {
	if raster.Empty() {
		return 0, graphics.ErrEmptyRaster
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// rows of RGB triplets are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGB,
		int32(raster.Width()), int32(raster.Height()), 0,
		gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(raster.Pix()),
	)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.DeleteTextures(1, &texture)
		return 0, fmt.Errorf("rendering: texture upload failed: 0x%04x", code)
	}
	return texture, nil
}

// Draw renders quad over the whole surface with alpha blending, then
// restores the bindings it changed.
func (renderer *ImageRenderer) Draw(size graphics.SizeInfo, quad graphics.Quad, texture uint32) error {
	vertices := flatten(quad)

	gl.Viewport(0, 0, int32(size.Width), int32(size.Height))
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(renderer.program)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	gl.Uniform1i(renderer.sampler, 0)

	gl.BindVertexArray(renderer.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, renderer.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(&vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quad)))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("rendering: draw failed: 0x%04x", code)
	}
	return nil
}

func (renderer *ImageRenderer) Release(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

// Delete frees the vertex objects. Textures are released by their owner.
func (renderer *ImageRenderer) Delete() {
	gl.DeleteBuffers(1, &renderer.vbo)
	gl.DeleteVertexArrays(1, &renderer.vao)
	renderer.vbo, renderer.vao = 0, 0
}

// flatten lays quad out as interleaved x, y, u, v floats.
func flatten(quad graphics.Quad) []float32 {
	vertices := make([]float32, 0, len(quad)*vertexFloats)
	for _, v := range quad {
		vertices = append(vertices, v.X, v.Y, v.TX, v.TY)
	}
	return vertices
}
