package behaviour

import (
	"SceneViewer/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

type testHost struct {
	entities []*Entity
	input    *input.Manager
	camera   *Camera
}

func newTestHost() *testHost {
	h := &testHost{input: input.NewManager()}
	h.camera = NewCamera(h, h.input)
	return h
}

func (h *testHost) Entity(id Handle) *Entity {
	i := int(id) - 1
	if i < 0 || i >= len(h.entities) {
		return nil
	}
	return h.entities[i]
}

func (h *testHost) Input() Binder   { return h.input }
func (h *testHost) Camera() *Camera { return h.camera }

func (h *testHost) spawn() *Entity {
	e := NewEntity(h, Handle(len(h.entities)+1), nil)
	h.entities = append(h.entities, e)
	return e
}

type uniformCall struct {
	name  string
	value interface{}
}

type fakeShader struct {
	calls []uniformCall
	used  int
}

func (s *fakeShader) Use()                           { s.used++ }
func (s *fakeShader) SetMat4(n string, m mgl32.Mat4) { s.calls = append(s.calls, uniformCall{n, m}) }
func (s *fakeShader) SetVec3(n string, v mgl32.Vec3) { s.calls = append(s.calls, uniformCall{n, v}) }
func (s *fakeShader) SetFloat(n string, v float32)   { s.calls = append(s.calls, uniformCall{n, v}) }
func (s *fakeShader) SetInt(n string, v int32)       { s.calls = append(s.calls, uniformCall{n, v}) }
func (s *fakeShader) SetUint(n string, v uint32)     { s.calls = append(s.calls, uniformCall{n, v}) }

type fakeModel struct {
	draws  int
	shader Shader
}

func (m *fakeModel) Draw(s Shader)           { m.draws++; m.shader = s }
func (m *fakeModel) BoundingRadius() float32 { return 1 }

const eps = 1e-4

// near compares on absolute distance, so float noise next to an exact zero
// still matches.
func near(a, b mgl32.Vec3) bool { return a.Sub(b).Len() < eps }

// sameRotation treats q and -q as the same orientation.
func sameRotation(a, b mgl32.Quat) bool {
	closeTo := func(q mgl32.Quat) bool {
		return mgl32.Abs(a.W-q.W) < eps && near(a.V, q.V)
	}
	return closeTo(b) || closeTo(b.Scale(-1))
}
