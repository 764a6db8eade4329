package renderer

import (
	"strconv"

	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/loader"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Material uniforms of the object shader.
const (
	UniformDiffuseColour  = "material.diffuseColour"
	UniformSpecularColour = "material.specularColour"
	UniformShininess      = "material.shininess"
	UniformHasDiffuseMap  = "material.hasDiffuseMap"
	UniformHasSpecularMap = "material.hasSpecularMap"
	UniformHasNormalMap   = "material.hasNormalMap"
)

type Texture struct {
	ID   uint32
	Kind loader.TextureKind
	Path string
}

// Mesh is one uploaded vertex/index buffer pair with its maps and material.
type Mesh struct {
	VAO, VBO, EBO  uint32
	IndexCount     int32
	Textures       []Texture
	Material       loader.Material
	BoundingRadius float32
}

// NewMesh uploads data. The textures it names are loaded through tm;
// failures are logged and the texture is skipped.
func NewMesh(data loader.MeshData, tm *TextureManager) *Mesh {
	m := &Mesh{
		IndexCount:     int32(len(data.Indices)),
		Material:       data.Material,
		BoundingRadius: data.BoundingRadius,
	}
	for _, ref := range data.Textures {
		m.AddTexture(tm, ref.Path, ref.Kind)
	}
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return m
	}

	vertices := data.Flatten()
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)

	stride := int32(loader.FloatsPerVertex * 4)
	// position, normal, texcoord, tangent
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, stride, gl.PtrOffset(8*4))
	gl.EnableVertexAttribArray(3)

	gl.BindVertexArray(0)
	return m
}

// AddTexture loads path and appends it as a map of kind.
func (m *Mesh) AddTexture(tm *TextureManager, path string, kind loader.TextureKind) {
	id, err := tm.Load(path)
	if err != nil {
		logTextureError(path, kind, err)
		return
	}
	m.Textures = append(m.Textures, Texture{ID: id, Kind: kind, Path: path})
}

type samplerBinding struct {
	unit    int32
	uniform string
	id      uint32
}

// samplerBindings numbers the maps of each kind from 1 and gives every
// map its own texture unit in order.
// samplerBindings numbers the maps of each kind from 1 and reports how
// many of each kind there are.
func samplerBindings(textures []Texture) (bindings []samplerBinding, counts map[loader.TextureKind]int) {
	counts = map[loader.TextureKind]int{}
	for i, t := range textures {
		counts[t.Kind]++
		bindings = append(bindings, samplerBinding{
			unit:    int32(i),
			uniform: t.Kind.Uniform() + strconv.Itoa(counts[t.Kind]),
			id:      t.ID,
		})
	}
	return bindings, counts
}

func boolUniform(on bool) uint32 {
	if on {
		return 1
	}
	return 0
}

// Draw binds the maps and material and draws the triangles.
func (m *Mesh) Draw(shader behaviour.Shader) {
	bindings, counts := samplerBindings(m.Textures)
	shader.SetUint(UniformHasDiffuseMap, boolUniform(counts[loader.TextureDiffuse] > 0))
	shader.SetUint(UniformHasSpecularMap, boolUniform(counts[loader.TextureSpecular] > 0))
	shader.SetUint(UniformHasNormalMap, boolUniform(counts[loader.TextureNormal] > 0))
	for _, b := range bindings {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(b.unit))
		shader.SetInt(b.uniform, b.unit)
		gl.BindTexture(gl.TEXTURE_2D, b.id)
	}
	gl.ActiveTexture(gl.TEXTURE0)

	shader.SetVec3(UniformDiffuseColour, m.Material.Diffuse)
	shader.SetVec3(UniformSpecularColour, m.Material.Specular)
	shader.SetFloat(UniformShininess, m.Material.Shininess)

	if m.VAO != 0 {
		gl.BindVertexArray(m.VAO)
		gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
		gl.BindVertexArray(0)
	}

	for _, b := range bindings {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(b.unit))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

// Delete frees the buffers and releases the mesh's textures.
func (m *Mesh) Delete(tm *TextureManager) {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		gl.DeleteBuffers(1, &m.VBO)
		gl.DeleteBuffers(1, &m.EBO)
		m.VAO, m.VBO, m.EBO = 0, 0, 0
	}
	for _, t := range m.Textures {
		tm.Release(t.ID)
	}
	m.Textures = nil
}
