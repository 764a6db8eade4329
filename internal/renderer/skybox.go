package renderer

import (
	"fmt"
	"image"

	"SceneViewer/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// Unit cube drawn around the camera. The cubemap is sampled with the
// vertex position, so no other attributes are needed.
var (
	SkyboxVertices = []float32{
		// front
		-1, -1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, 1, 1,
		// back
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		-1, 1, -1,
	}
	SkyboxIndices = []uint32{
		0, 1, 2, 2, 3, 0, // front
		1, 5, 6, 6, 2, 1, // right
		7, 6, 5, 5, 4, 7, // back
		4, 0, 3, 3, 7, 4, // left
		4, 5, 1, 1, 0, 4, // bottom
		3, 2, 6, 6, 7, 3, // top
	}
)

type Skybox struct {
	VAO       uint32
	VBO       uint32
	EBO       uint32
	TextureID uint32
}

// NewSkybox uploads the unit cube. It has no texture until SetTexture.
func NewSkybox() *Skybox {
	s := &Skybox{}
	gl.GenVertexArrays(1, &s.VAO)
	gl.BindVertexArray(s.VAO)

	gl.GenBuffers(1, &s.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(SkyboxVertices)*4, gl.Ptr(SkyboxVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &s.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(SkyboxIndices)*4, gl.Ptr(SkyboxIndices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	return s
}

// SetTexture replaces the cubemap, freeing the previous one.
func (s *Skybox) SetTexture(id uint32) {
	if s.TextureID != 0 {
		gl.DeleteTextures(1, &s.TextureID)
	}
	s.TextureID = id
}

func (s *Skybox) Draw() {
	if s.TextureID == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.TextureID)
	gl.BindVertexArray(s.VAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(SkyboxIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
}

// Cleanup frees the cube buffers and the cubemap.
func (s *Skybox) Cleanup() {
	gl.DeleteVertexArrays(1, &s.VAO)
	gl.DeleteBuffers(1, &s.VBO)
	gl.DeleteBuffers(1, &s.EBO)
	s.SetTexture(0)
}

// LoadCubemap uploads six faces in +X, -X, +Y, -Y, +Z, -Z order. Faces
// that differ in size from the first are rescaled to match it.
func LoadCubemap(faces [6]string) (uint32, error) {
	images, err := decodeFaces(faces)
	if err != nil {
		return 0, err
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, textureID)
	for i, img := range images {
		size := img.Rect.Size()
		gl.TexImage2D(
			gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA,
			int32(size.X), int32(size.Y),
			0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return textureID, nil
}

func decodeFaces(faces [6]string) ([6]*image.RGBA, error) {
	var images [6]*image.RGBA
	for i, path := range faces {
		img, err := DecodeImage(path)
		if err != nil {
			return images, fmt.Errorf("cubemap face %d: %w", i, err)
		}
		if i > 0 && img.Rect.Size() != images[0].Rect.Size() {
			logger.Log.Warn("Cubemap face resized",
				zap.String("path", path),
				zap.Stringer("from", img.Rect.Size()),
				zap.Stringer("to", images[0].Rect.Size()))
			img = Resize(img, images[0].Rect.Size())
		}
		images[i] = img
	}
	return images, nil
}
