package engine

import (
	"testing"

	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/config"
	"SceneViewer/internal/loader"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rotatingOf(t *testing.T, e *behaviour.Entity) *behaviour.RotatingComponent {
	t.Helper()
	c, ok := e.Component(behaviour.KindRotating).(*behaviour.RotatingComponent)
	require.True(t, ok, "entity %d has no rotating component", e.Handle())
	return c
}

func TestBuildDefaultScene(t *testing.T) {
	p := newFakePipeline()
	w := NewWorld(p, Options{})
	cfg := config.Default()

	BuildScene(w, cfg)

	require.Len(t, w.Lights(), 2)
	require.Len(t, w.Entities(), 6)
	assert.Len(t, w.Combined(), 8)
	assert.Equal(t, mgl32.Vec3{10, 5, -5}, w.Lights()[0].Position())
	assert.Equal(t, [][6]string{cfg.Skybox.Faces()}, p.cubemaps)

	crate := w.Entities()[0]
	model := crate.Model.(*fakeModel)
	assert.Equal(t, map[loader.TextureKind]string{
		loader.TextureDiffuse:  "assets/models/crate_diffuse.jpg",
		loader.TextureSpecular: "assets/models/crate_specular.jpg",
		loader.TextureNormal:   "assets/models/crate_normal.jpg",
	}, model.textures)
	require.NotNil(t, model.material)
	assert.Equal(t, float32(64), model.material.Shininess)
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, crate.Position())
	assert.NotNil(t, crate.Interactable())
	assert.True(t, rotatingOf(t, crate).LocalSpace)

	wall := w.Entities()[2]
	assert.True(t, near(wall.UpVector(), mgl32.Vec3{0, 0, 1}), "got %v", wall.UpVector())

	hulk := w.Entities()[3]
	assert.Nil(t, hulk.Component(behaviour.KindRotating))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, hulk.Scale())

	// Four model files (all missing here) and two generated tori.
	require.Len(t, p.newModels, 6)
	assert.NotEmpty(t, p.newModels[4][0].Vertices)
	assert.NotEmpty(t, p.newModels[5][0].Vertices)
}

func TestBuildSceneCamera(t *testing.T) {
	w := NewWorld(newFakePipeline(), Options{})
	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 800, 600
	cfg.Camera.FlySpeed = 7
	cfg.Camera.MaxPitch = 45
	cfg.Camera.Position = mgl32.Vec3{1, 2, 3}

	BuildScene(w, cfg)

	cam := w.Camera()
	assert.Equal(t, float32(7), cam.FlySpeed)
	assert.Equal(t, float32(45), cam.MaxPitch)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cam.Position())
	assert.Equal(t, float32(800), cam.Width)
	assert.Equal(t, float32(600), cam.Height)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(70), 800.0/600.0, 1, 300), cam.Projection)
}

func TestBuildSceneEntityOptions(t *testing.T) {
	w := NewWorld(newFakePipeline(), Options{})
	cfg := config.Default()
	cfg.Lights = nil
	cfg.Entities = []config.EntityConfig{{
		Name:     "post",
		Torus:    &config.TorusConfig{Outer: 1, Inner: 0.5, Rings: 8, Sides: 8},
		Scale:    mgl32.Vec3{2, 2, 2},
		Locked:   true,
		Rotating: &config.RotatingConfig{Speed: 30, Axis: mgl32.Vec3{0, 1, 0}, Global: true},
	}}

	BuildScene(w, cfg)

	require.Len(t, w.Entities(), 1)
	e := w.Entities()[0]
	assert.Equal(t, behaviour.Handle(1), e.Handle())
	assert.Nil(t, e.Interactable())
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, e.Scale())
	assert.False(t, rotatingOf(t, e).LocalSpace)
	assert.Empty(t, e.Model.(*fakeModel).textures)
	assert.Nil(t, e.Model.(*fakeModel).material)
}

func TestBuildSceneSurvivesMissingSkybox(t *testing.T) {
	p := newFakePipeline()
	p.cubemapErr = errNoCubemap
	w := NewWorld(p, Options{})

	BuildScene(w, config.Default())

	assert.Len(t, w.Combined(), 8)
}
