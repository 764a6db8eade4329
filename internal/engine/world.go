package engine

import (
	"fmt"

	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/input"
	"SceneViewer/internal/loader"
	"SceneViewer/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Pipeline is the GPU side of a world.
type Pipeline interface {
	ObjectShader() behaviour.Shader
	LightShader() behaviour.Shader
	SkyboxShader() behaviour.Shader
	SelectionShader() behaviour.Shader

	NewModel(meshes []loader.MeshData) behaviour.Model
	LoadCubemap(faces [6]string) error
	DrawSkybox()
	SetDepthLessEqual(on bool)

	BeginSelection()
	ViewportHeight() int
	ReadPixel(x, y int) uint8
	ClearFrame()
}

type Options struct {
	// LightModel is drawn at the position of every light.
	LightModel       string
	MouseSensitivity float32
	// MeshCacheDir enables the parsed-model cache when set.
	MeshCacheDir string
}

// World owns the scene: camera, lights, entities and the input manager
// that drives them. It implements behaviour.Host.
type World struct {
	pipeline Pipeline
	input    *input.Manager
	camera   *behaviour.Camera
	opts     Options
	cache    *loader.MeshCache

	lights   []*behaviour.Light
	entities []*behaviour.Entity
	// combined holds lights and entities in creation order. An entity's
	// handle is its index here plus one.
	combined []*behaviour.Entity
	targets  []input.EntityID
}

// NewWorld creates an empty world with its camera and input manager.
func NewWorld(pipeline Pipeline, opts Options) *World {
	w := &World{
		pipeline: pipeline,
		input:    input.NewManager(),
		opts:     opts,
	}
	if opts.MouseSensitivity > 0 {
		w.input.MouseSensitivity = opts.MouseSensitivity
	}
	if opts.MeshCacheDir != "" {
		w.cache = &loader.MeshCache{Dir: opts.MeshCacheDir}
	}
	w.camera = behaviour.NewCamera(w, w.input)
	w.camera.SetPositionXYZ(0, 0, 5)
	w.camera.UpdateMatrices()
	return w
}

// Entity resolves a handle; it returns nil for None or a stale handle.
func (w *World) Entity(h behaviour.Handle) *behaviour.Entity {
	i := int(h) - 1
	if i < 0 || i >= len(w.combined) {
		return nil
	}
	return w.combined[i]
}

func (w *World) Input() behaviour.Binder       { return w.input }
func (w *World) Camera() *behaviour.Camera     { return w.camera }
func (w *World) InputManager() *input.Manager  { return w.input }
func (w *World) Lights() []*behaviour.Light    { return w.lights }
func (w *World) Entities() []*behaviour.Entity { return w.entities }
func (w *World) Combined() []*behaviour.Entity { return w.combined }

// CreateEntity loads a model file into a new entity. A model that fails to
// load is logged and replaced by an empty one, so the entity still exists.
func (w *World) CreateEntity(path string, settings loader.ImportSettings) *behaviour.Entity {
	return w.CreateEntityFromModel(w.loadModel(path, settings))
}

// CreateEntityFromMesh uploads generated geometry into a new entity.
func (w *World) CreateEntityFromMesh(mesh loader.MeshData) *behaviour.Entity {
	return w.CreateEntityFromModel(w.pipeline.NewModel([]loader.MeshData{mesh}))
}

// CreateEntityFromModel appends an entity drawing model. A nil model is allowed.
func (w *World) CreateEntityFromModel(model behaviour.Model) *behaviour.Entity {
	e := w.spawn(model)
	w.entities = append(w.entities, e)
	return e
}

// AddLight creates a light drawn with the light model. Lights can be
// grabbed and moved like any other entity.
func (w *World) AddLight(position, ambient, diffuse, specular mgl32.Vec3) *behaviour.Light {
	var model behaviour.Model
	if w.opts.LightModel != "" {
		model = w.loadModel(w.opts.LightModel, loader.ImportSettings{})
	}
	e := w.spawn(model)
	behaviour.AddInteractable(e)
	e.SetPosition(position)

	light := behaviour.NewLight(e, ambient, diffuse, specular)
	w.lights = append(w.lights, light)
	return light
}

func (w *World) spawn(model behaviour.Model) *behaviour.Entity {
	h := behaviour.Handle(len(w.combined) + 1)
	e := behaviour.NewEntity(w, h, model)
	w.combined = append(w.combined, e)
	w.targets = append(w.targets, h)
	return e
}

func (w *World) loadModel(path string, settings loader.ImportSettings) behaviour.Model {
	var meshes []loader.MeshData
	var err error
	if w.cache != nil {
		meshes, err = w.cache.Load(path, settings)
	} else {
		meshes, err = loader.LoadModel(path, settings)
	}
	if err != nil {
		logger.Log.Error("Could not load model", zap.String("path", path), zap.Error(err))
	}
	return w.pipeline.NewModel(meshes)
}

// SetSkyboxTexture loads the six cubemap faces. On failure the previous
// skybox stays in place.
func (w *World) SetSkyboxTexture(right, left, top, bottom, back, front string) error {
	faces := [6]string{right, left, top, bottom, back, front}
	if err := w.pipeline.LoadCubemap(faces); err != nil {
		logger.Log.Error("Could not load skybox", zap.Strings("faces", faces[:]), zap.Error(err))
		return fmt.Errorf("skybox: %w", err)
	}
	return nil
}

// Update runs one frame of simulation: the camera moves, hover is
// resolved against the frame's entities, then every entity updates.
func (w *World) Update(deltaTime float32) {
	w.camera.Update(deltaTime)
	w.input.Pick(w.targets, &selectionPass{world: w})
	for _, e := range w.combined {
		e.Update(deltaTime)
	}
}

// Render draws lights, then objects, then the skybox behind everything.
func (w *World) Render() {
	lightShader := w.pipeline.LightShader()
	objectShader := w.pipeline.ObjectShader()
	lightShader.Use()
	w.setViewProjection(lightShader)
	for i, light := range w.lights {
		objectShader.Use()
		objectShader.SetVec3(LightUniform(i, "position"), light.Position())
		objectShader.SetVec3(LightUniform(i, "ambient"), light.Ambient)
		objectShader.SetVec3(LightUniform(i, "diffuse"), light.Diffuse)
		objectShader.SetVec3(LightUniform(i, "specular"), light.Specular)

		lightShader.Use()
		lightShader.SetVec3(behaviour.UniformLightColour, light.Diffuse)
		light.Render(lightShader)
	}

	objectShader.Use()
	w.setViewProjection(objectShader)
	objectShader.SetVec3(behaviour.UniformViewPosition, w.camera.Position())
	for _, e := range w.entities {
		e.Render(objectShader)
	}

	w.pipeline.SetDepthLessEqual(true)
	skybox := w.pipeline.SkyboxShader()
	skybox.Use()
	skybox.SetMat4(behaviour.UniformProjection, w.camera.Projection)
	skybox.SetMat4(behaviour.UniformView, SkyboxView(w.camera.View))
	w.pipeline.DrawSkybox()
	w.pipeline.SetDepthLessEqual(false)
}

func (w *World) setViewProjection(s behaviour.Shader) {
	s.SetMat4(behaviour.UniformView, w.camera.View)
	s.SetMat4(behaviour.UniformProjection, w.camera.Projection)
}

// LightUniform names a field of the object shader's light array.
func LightUniform(i int, field string) string {
	return fmt.Sprintf("lights[%d].%s", i, field)
}

// SkyboxView drops the translation of view so the skybox stays centred
// on the camera.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}

// selectionPass draws the frame's entities with the selection shader.
type selectionPass struct {
	world  *World
	shader behaviour.Shader
}

func (p *selectionPass) Begin() {
	p.world.pipeline.BeginSelection()
	p.shader = p.world.pipeline.SelectionShader()
	p.shader.Use()
	p.world.setViewProjection(p.shader)
}

func (p *selectionPass) Draw(i int, code uint8) {
	p.shader.SetUint(behaviour.UniformColourCode, uint32(code))
	p.world.combined[i].Render(p.shader)
}

func (p *selectionPass) Height() int           { return p.world.pipeline.ViewportHeight() }
func (p *selectionPass) Sample(x, y int) uint8 { return p.world.pipeline.ReadPixel(x, y) }
func (p *selectionPass) Clear()                { p.world.pipeline.ClearFrame() }
