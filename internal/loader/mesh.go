package loader

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	Tangent  mgl32.Vec3
}

// FloatsPerVertex is the number of float32 values in one Vertex.
const FloatsPerVertex = 11

type TextureKind int

const (
	TextureDiffuse TextureKind = iota
	TextureSpecular
	TextureNormal
)

// Uniform is the sampler prefix in the object shader. Samplers of the same
// kind are numbered from 1, e.g. material.diffuse1.
func (k TextureKind) Uniform() string {
	switch k {
	case TextureSpecular:
		return "material.specular"
	case TextureNormal:
		return "material.normal"
	default:
		return "material.diffuse"
	}
}

func (k TextureKind) String() string {
	switch k {
	case TextureSpecular:
		return "specular"
	case TextureNormal:
		return "normal"
	default:
		return "diffuse"
	}
}

type TextureRef struct {
	Kind TextureKind
	Path string
}

// Material colours multiply the sampled maps.
type Material struct {
	Name      string
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32
}

var DefaultMaterial = Material{
	Name:      "default",
	Diffuse:   mgl32.Vec3{1, 1, 1},
	Specular:  mgl32.Vec3{1, 1, 1},
	Shininess: 12,
}

// MeshData is a triangulated mesh ready for upload.
type MeshData struct {
	Name           string
	Vertices       []Vertex
	Indices        []uint32
	Textures       []TextureRef
	Material       Material
	BoundingRadius float32
}

// Flatten interleaves the vertices as position, normal, texcoord, tangent.
func (m *MeshData) Flatten() []float32 {
	out := make([]float32, 0, len(m.Vertices)*FloatsPerVertex)
	for _, v := range m.Vertices {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
		out = append(out, v.Tangent[:]...)
	}
	return out
}

// BoundingRadius is the length of the furthest extent along each axis,
// which encloses every vertex around the local origin.
func BoundingRadius(vertices []Vertex) float32 {
	var furthest mgl32.Vec3
	for _, v := range vertices {
		for i := 0; i < 3; i++ {
			if a := mgl32.Abs(v.Position[i]); a > furthest[i] {
				furthest[i] = a
			}
		}
	}
	return furthest.Len()
}

// RecalculateNormals replaces every normal with the normalized sum of the
// face normals of the triangles sharing the vertex.
func RecalculateNormals(vertices []Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Normal = mgl32.Vec3{}
	}
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if !inRange(len(vertices), i0, i1, i2) {
			continue
		}
		v0, v1, v2 := vertices[i0].Position, vertices[i1].Position, vertices[i2].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		if n.Len() == 0 {
			continue
		}
		n = n.Normalize()
		vertices[i0].Normal = vertices[i0].Normal.Add(n)
		vertices[i1].Normal = vertices[i1].Normal.Add(n)
		vertices[i2].Normal = vertices[i2].Normal.Add(n)
	}
	for i := range vertices {
		if vertices[i].Normal.Len() > 0 {
			vertices[i].Normal = vertices[i].Normal.Normalize()
		}
	}
}

// CalculateTangents derives per-vertex tangents from the texture
// coordinates, orthogonalized against the normal.
func CalculateTangents(vertices []Vertex, indices []uint32) {
	acc := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if !inRange(len(vertices), i0, i1, i2) {
			continue
		}
		a, b, c := vertices[i0], vertices[i1], vertices[i2]
		e1, e2 := b.Position.Sub(a.Position), c.Position.Sub(a.Position)
		d1, d2 := b.TexCoord.Sub(a.TexCoord), c.TexCoord.Sub(a.TexCoord)
		det := d1.X()*d2.Y() - d2.X()*d1.Y()
		if mgl32.Abs(det) < 1e-8 {
			continue
		}
		t := e1.Mul(d2.Y()).Sub(e2.Mul(d1.Y())).Mul(1 / det)
		acc[i0] = acc[i0].Add(t)
		acc[i1] = acc[i1].Add(t)
		acc[i2] = acc[i2].Add(t)
	}
	for i := range vertices {
		n := vertices[i].Normal
		t := acc[i].Sub(n.Mul(n.Dot(acc[i])))
		if t.Len() < 1e-8 {
			t = anyPerpendicular(n)
		}
		vertices[i].Tangent = t.Normalize()
	}
}

func anyPerpendicular(n mgl32.Vec3) mgl32.Vec3 {
	if n.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	axis := mgl32.Vec3{1, 0, 0}
	if mgl32.Abs(n.X()) > 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return n.Cross(axis)
}

func inRange(n int, idx ...uint32) bool {
	for _, i := range idx {
		if int(i) >= n {
			return false
		}
	}
	return true
}
