package loader

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Torus builds a ring of outer radius around the Y axis with a tube of
// inner radius. rings splits the ring and sides splits the tube. The seam
// vertices are duplicated with texture coordinate 1 so maps wrap cleanly.
func Torus(outer, inner float32, rings, sides int) MeshData {
	if rings < 3 {
		rings = 3
	}
	if sides < 3 {
		sides = 3
	}

	vertices := make([]Vertex, 0, (rings+1)*(sides+1))
	for seg := 0; seg <= rings; seg++ {
		u := float32(seg) / float32(rings)
		a := float32(seg%rings) / float32(rings) * 2 * math32.Pi
		sinA, cosA := math32.Sin(a), math32.Cos(a)
		centre := mgl32.Vec3{cosA * outer, 0, sinA * outer}
		// Direction of travel around the ring.
		tangent := mgl32.Vec3{-sinA, 0, cosA}

		for side := 0; side <= sides; side++ {
			v := float32(side) / float32(sides)
			b := float32(side%sides) / float32(sides) * 2 * math32.Pi
			sinB, cosB := math32.Sin(b), math32.Cos(b)
			normal := mgl32.Vec3{sinB * cosA, cosB, sinB * sinA}

			vertices = append(vertices, Vertex{
				Position: centre.Add(normal.Mul(inner)),
				Normal:   normal,
				TexCoord: mgl32.Vec2{u, v},
				Tangent:  tangent,
			})
		}
	}

	indices := make([]uint32, 0, rings*sides*6)
	for seg := 0; seg < rings; seg++ {
		for side := 0; side < sides; side++ {
			current := uint32(side + seg*(sides+1))
			next := uint32(side + (seg+1)*(sides+1))
			indices = append(indices,
				current, next, next+1,
				current, next+1, current+1,
			)
		}
	}

	return MeshData{
		Name:           "torus",
		Vertices:       vertices,
		Indices:        indices,
		Material:       DefaultMaterial,
		BoundingRadius: BoundingRadius(vertices),
	}
}
