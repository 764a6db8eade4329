package renderer

import (
	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/loader"
	"SceneViewer/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

type ShaderPaths struct {
	Vertex   string
	Fragment string
}

type ShaderSet struct {
	Object    ShaderPaths
	Light     ShaderPaths
	Skybox    ShaderPaths
	Selection ShaderPaths
}

// OpenGLRenderer owns the GL resources of one world: its four programs,
// the shared textures, the skybox and the uploaded models. It needs a
// current context.
type OpenGLRenderer struct {
	object    *Shader
	light     *Shader
	skybox    *Shader
	selection *Shader

	textures *TextureManager
	sky      *Skybox
	models   []*Model

	ClearColour [3]float32
}

// NewOpenGLRenderer loads the four programs and the skybox cube. A GL
// context must be current.
func NewOpenGLRenderer(shaders ShaderSet) *OpenGLRenderer {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	rend := &OpenGLRenderer{
		object:    LoadShader(shaders.Object.Vertex, shaders.Object.Fragment),
		light:     LoadShader(shaders.Light.Vertex, shaders.Light.Fragment),
		skybox:    LoadShader(shaders.Skybox.Vertex, shaders.Skybox.Fragment),
		selection: LoadShader(shaders.Selection.Vertex, shaders.Selection.Fragment),
		textures:  NewTextureManager(),
		sky:       NewSkybox(),
	}
	logger.Log.Info("OpenGL renderer initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))
	return rend
}

func (rend *OpenGLRenderer) ObjectShader() behaviour.Shader    { return rend.object }
func (rend *OpenGLRenderer) LightShader() behaviour.Shader     { return rend.light }
func (rend *OpenGLRenderer) SkyboxShader() behaviour.Shader    { return rend.skybox }
func (rend *OpenGLRenderer) SelectionShader() behaviour.Shader { return rend.selection }

// NewModel uploads meshes and keeps the model for Cleanup.
func (rend *OpenGLRenderer) NewModel(meshes []loader.MeshData) behaviour.Model {
	m := NewModel(meshes, rend.textures)
	rend.models = append(rend.models, m)
	return m
}

// LoadCubemap replaces the skybox texture.
func (rend *OpenGLRenderer) LoadCubemap(faces [6]string) error {
	id, err := LoadCubemap(faces)
	if err != nil {
		return err
	}
	rend.sky.SetTexture(id)
	return nil
}

func (rend *OpenGLRenderer) DrawSkybox() { rend.sky.Draw() }

// SetDepthLessEqual switches the depth test between LEQUAL and the
// default LESS.
func (rend *OpenGLRenderer) SetDepthLessEqual(on bool) {
	if on {
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.DepthFunc(gl.LESS)
	}
}

// BeginFrame clears the back buffer before the visible pass.
func (rend *OpenGLRenderer) BeginFrame() {
	gl.ClearColor(rend.ClearColour[0], rend.ClearColour[1], rend.ClearColour[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// BeginSelection prepares the back buffer for colour-coded picking.
func (rend *OpenGLRenderer) BeginSelection() {
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ViewportHeight is the current viewport height in pixels.
func (rend *OpenGLRenderer) ViewportHeight() int {
	var viewport [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &viewport[0])
	return int(viewport[3])
}

// ReadPixel returns the red channel of the back buffer at (x, y) in
// buffer coordinates.
func (rend *OpenGLRenderer) ReadPixel(x, y int) uint8 {
	var pixel [4]uint8
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixel[0]))
	return pixel[0]
}

func (rend *OpenGLRenderer) ClearFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// UpdateViewport resizes the drawable area.
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

// Cleanup frees every model, the skybox and the programs.
func (rend *OpenGLRenderer) Cleanup() {
	for _, m := range rend.models {
		m.Delete()
	}
	rend.models = nil
	rend.sky.Cleanup()
	for _, s := range []*Shader{rend.object, rend.light, rend.skybox, rend.selection} {
		s.Delete()
	}
	stats := rend.textures.Stats()
	logger.Log.Info("Renderer cleaned up",
		zap.Int("texturesLoaded", stats.Loaded),
		zap.Int("textureCacheHits", stats.CacheHits),
		zap.Int("texturesLeaked", stats.Active))
}
