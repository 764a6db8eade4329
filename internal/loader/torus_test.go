package loader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTorusTopology(t *testing.T) {
	m := Torus(2, 0.5, 8, 6)

	assert.Len(t, m.Vertices, 9*7)
	assert.Len(t, m.Indices, 8*6*6)
	for _, i := range m.Indices {
		require.Less(t, int(i), len(m.Vertices))
	}
}

func TestTorusGeometry(t *testing.T) {
	const outer, inner = 2, 0.5
	m := Torus(outer, inner, 16, 12)

	for _, v := range m.Vertices {
		// Distance from the ring's centre line equals the tube radius.
		ring := mgl32.Vec3{v.Position.X(), 0, v.Position.Z()}.Normalize().Mul(outer)
		assert.InDelta(t, inner, v.Position.Sub(ring).Len(), 1e-4)
		assert.InDelta(t, 1, v.Normal.Len(), 1e-5)
		assert.InDelta(t, 0, v.Normal.Dot(v.Tangent), 1e-5)
	}
	assert.InDelta(t, mgl32.Vec3{outer + inner, inner, outer + inner}.Len(), m.BoundingRadius, 1e-3)
}

func TestTorusSeamWraps(t *testing.T) {
	m := Torus(1, 0.25, 4, 4)

	first, last := m.Vertices[0], m.Vertices[4*5]
	assert.Equal(t, first.Position, last.Position)
	assert.Equal(t, mgl32.Vec2{0, 0}, first.TexCoord)
	assert.Equal(t, mgl32.Vec2{1, 0}, last.TexCoord)

	// The last vertex of each tube ring closes it at v = 1.
	assert.Equal(t, m.Vertices[0].Position, m.Vertices[4].Position)
	assert.Equal(t, float32(1), m.Vertices[4].TexCoord.Y())
}

func TestTorusClampsSegments(t *testing.T) {
	m := Torus(1, 0.2, 0, 1)
	assert.Len(t, m.Indices, 3*3*6)
}
