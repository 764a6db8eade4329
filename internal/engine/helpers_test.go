package engine

import (
	"errors"
	"fmt"

	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/loader"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder collects GPU-facing calls in the order they happen.
type recorder struct {
	events []string
}

func (r *recorder) add(format string, args ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

type fakeShader struct {
	name  string
	rec   *recorder
	mat4  map[string]mgl32.Mat4
	vec3  map[string]mgl32.Vec3
	uints []uint32
}

func newFakeShader(name string, rec *recorder) *fakeShader {
	return &fakeShader{name: name, rec: rec, mat4: map[string]mgl32.Mat4{}, vec3: map[string]mgl32.Vec3{}}
}

func (s *fakeShader) Use() { s.rec.add("%s:use", s.name) }

func (s *fakeShader) SetMat4(n string, m mgl32.Mat4) {
	s.mat4[n] = m
	s.rec.add("%s:mat4:%s", s.name, n)
}

func (s *fakeShader) SetVec3(n string, v mgl32.Vec3) {
	s.vec3[n] = v
	s.rec.add("%s:vec3:%s", s.name, n)
}

func (s *fakeShader) SetFloat(n string, _ float32) { s.rec.add("%s:float:%s", s.name, n) }
func (s *fakeShader) SetInt(n string, _ int32)     { s.rec.add("%s:int:%s", s.name, n) }

func (s *fakeShader) SetUint(n string, v uint32) {
	s.uints = append(s.uints, v)
	s.rec.add("%s:uint:%s=%d", s.name, n, v)
}

type fakeModel struct {
	name     string
	rec      *recorder
	textures map[loader.TextureKind]string
	material *loader.Material
}

func (m *fakeModel) AddTexture(path string, kind loader.TextureKind) {
	if m.textures == nil {
		m.textures = map[loader.TextureKind]string{}
	}
	m.textures[kind] = path
}

func (m *fakeModel) SetMaterial(mat loader.Material) { m.material = &mat }

func (m *fakeModel) Draw(s behaviour.Shader) {
	m.rec.add("draw:%s:%s", m.name, s.(*fakeShader).name)
}

func (m *fakeModel) BoundingRadius() float32 { return 1 }

type fakePipeline struct {
	rec       *recorder
	object    *fakeShader
	light     *fakeShader
	skybox    *fakeShader
	selection *fakeShader

	height     int
	pixel      uint8
	readX      int
	readY      int
	newModels  [][]loader.MeshData
	cubemaps   [][6]string
	cubemapErr error
}

func newFakePipeline() *fakePipeline {
	rec := &recorder{}
	return &fakePipeline{
		rec:       rec,
		object:    newFakeShader("object", rec),
		light:     newFakeShader("light", rec),
		skybox:    newFakeShader("skybox", rec),
		selection: newFakeShader("selection", rec),
		height:    720,
	}
}

func (p *fakePipeline) ObjectShader() behaviour.Shader    { return p.object }
func (p *fakePipeline) LightShader() behaviour.Shader     { return p.light }
func (p *fakePipeline) SkyboxShader() behaviour.Shader    { return p.skybox }
func (p *fakePipeline) SelectionShader() behaviour.Shader { return p.selection }

func (p *fakePipeline) NewModel(meshes []loader.MeshData) behaviour.Model {
	p.newModels = append(p.newModels, meshes)
	return &fakeModel{name: fmt.Sprintf("m%d", len(p.newModels)), rec: p.rec}
}

func (p *fakePipeline) LoadCubemap(faces [6]string) error {
	p.cubemaps = append(p.cubemaps, faces)
	return p.cubemapErr
}

func (p *fakePipeline) DrawSkybox() { p.rec.add("skybox:draw") }

func (p *fakePipeline) SetDepthLessEqual(on bool) {
	if on {
		p.rec.add("depth:lequal")
	} else {
		p.rec.add("depth:less")
	}
}

func (p *fakePipeline) BeginSelection()     { p.rec.add("selection:begin") }
func (p *fakePipeline) ViewportHeight() int { return p.height }
func (p *fakePipeline) ClearFrame()         { p.rec.add("selection:clear") }

func (p *fakePipeline) ReadPixel(x, y int) uint8 {
	p.readX, p.readY = x, y
	p.rec.add("selection:read")
	return p.pixel
}

var errNoCubemap = errors.New("no cubemap")

// updateRecorder logs each update of its owner.
type updateRecorder struct {
	behaviour.BaseComponent
	rec *recorder
}

func (c *updateRecorder) Update(float32) { c.rec.add("update:%d", c.OwnerHandle()) }

func near(a, b mgl32.Vec3) bool { return a.Sub(b).Len() < 1e-5 }
