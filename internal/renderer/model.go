package renderer

import (
	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/loader"
	"SceneViewer/internal/logger"

	"go.uber.org/zap"
)

// Model is a drawable collection of meshes.
type Model struct {
	Meshes []*Mesh

	textures *TextureManager
}

// NewModel uploads every mesh. A model without meshes is valid and draws
// nothing.
func NewModel(meshes []loader.MeshData, tm *TextureManager) *Model {
	m := &Model{textures: tm}
	for _, data := range meshes {
		m.Meshes = append(m.Meshes, NewMesh(data, tm))
	}
	return m
}

// Draw draws every mesh with shader.
func (m *Model) Draw(shader behaviour.Shader) {
	for _, mesh := range m.Meshes {
		mesh.Draw(shader)
	}
}

// BoundingRadius is the largest radius of the meshes.
func (m *Model) BoundingRadius() float32 {
	var r float32
	for _, mesh := range m.Meshes {
		if mesh.BoundingRadius > r {
			r = mesh.BoundingRadius
		}
	}
	return r
}

// AddTexture adds a map to every mesh of the model.
func (m *Model) AddTexture(path string, kind loader.TextureKind) {
	for _, mesh := range m.Meshes {
		mesh.AddTexture(m.textures, path, kind)
	}
}

// SetMaterial overrides the material of every mesh.
func (m *Model) SetMaterial(mat loader.Material) {
	for _, mesh := range m.Meshes {
		mesh.Material = mat
	}
}

// Delete frees the GPU buffers and releases the textures of every mesh.
func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete(m.textures)
	}
	m.Meshes = nil
}

func logTextureError(path string, kind loader.TextureKind, err error) {
	logger.Log.Error("Could not load texture",
		zap.String("path", path),
		zap.Stringer("kind", kind),
		zap.Error(err))
}
