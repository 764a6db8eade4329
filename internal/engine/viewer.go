package engine

import (
	"fmt"
	"runtime"

	"SceneViewer/internal/config"
	"SceneViewer/internal/input"
	"SceneViewer/internal/logger"
	"SceneViewer/internal/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Viewer opens a window and runs the frame loop for one world.
type Viewer struct {
	cfg    *config.Config
	window *glfw.Window
	rend   *renderer.OpenGLRenderer
	world  *World
}

// NewViewer prepares a viewer for cfg. Nothing is opened until Run.
func NewViewer(cfg *config.Config) *Viewer {
	return &Viewer{cfg: cfg}
}

// World is nil until Run has created the GL context.
func (v *Viewer) World() *World { return v.world }

// Run blocks until the window is closed. It must be called from the main
// goroutine.
func (v *Viewer) Run() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	wc := v.cfg.Window
	window, err := glfw.CreateWindow(wc.Width, wc.Height, wc.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	v.window = window
	defer window.Destroy()

	window.SetPos(wc.X, wc.Y)
	if wc.DarkTitleBar {
		setDarkTitleBar(window)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init OpenGL: %w", err)
	}
	glfw.SwapInterval(1)

	s := v.cfg.Shaders
	v.rend = renderer.NewOpenGLRenderer(renderer.ShaderSet{
		Object:    renderer.ShaderPaths{Vertex: s.Object.Vertex, Fragment: s.Object.Fragment},
		Light:     renderer.ShaderPaths{Vertex: s.Light.Vertex, Fragment: s.Light.Fragment},
		Skybox:    renderer.ShaderPaths{Vertex: s.Skybox.Vertex, Fragment: s.Skybox.Fragment},
		Selection: renderer.ShaderPaths{Vertex: s.Selection.Vertex, Fragment: s.Selection.Fragment},
	})
	defer v.rend.Cleanup()

	v.world = NewWorld(v.rend, Options{
		LightModel:       v.cfg.Scene.LightModel,
		MouseSensitivity: v.cfg.Input.MouseSensitivity,
		MeshCacheDir:     v.cfg.Scene.MeshCache,
	})
	BuildScene(v.world, v.cfg)

	fbWidth, fbHeight := window.GetFramebufferSize()
	v.resize(fbWidth, fbHeight)
	v.bindWindow()

	logger.Log.Info("Viewer running",
		zap.Int("width", wc.Width),
		zap.Int("height", wc.Height))
	v.loop()
	return nil
}

func (v *Viewer) bindWindow() {
	in := v.world.InputManager()
	cam := v.world.Camera()
	window := v.window

	cam.OnLookStart = func() { window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled) }
	cam.OnLookEnd = func() { window.SetInputMode(glfw.CursorMode, glfw.CursorNormal) }

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		k, ok := keyRune(key)
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			in.OnKeyDown(k)
		case glfw.Release:
			in.OnKeyUp(k)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := mouseButton(button)
		if !ok || action == glfw.Repeat {
			return
		}
		x, y := v.cursor(w.GetCursorPos())
		in.OnMouseButton(b, action == glfw.Press, x, y)
	})

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		in.OnMouseMoved(v.cursor(x, y))
	})

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		v.resize(width, height)
	})
}

// cursor converts window coordinates to framebuffer pixels, which differ
// on high-density displays.
func (v *Viewer) cursor(x, y float64) (float32, float32) {
	winWidth, winHeight := v.window.GetSize()
	fbWidth, fbHeight := v.window.GetFramebufferSize()
	if winWidth == 0 || winHeight == 0 {
		return float32(x), float32(y)
	}
	return float32(x * float64(fbWidth) / float64(winWidth)),
		float32(y * float64(fbHeight) / float64(winHeight))
}

func (v *Viewer) resize(width, height int) {
	if width == 0 || height == 0 {
		return
	}
	v.rend.UpdateViewport(int32(width), int32(height))
	cam := v.world.Camera()
	cam.SetLens(cam.FOV, float32(width), float32(height), cam.Near, cam.Far)
}

func (v *Viewer) loop() {
	lastTime := glfw.GetTime()
	for !v.window.ShouldClose() {
		now := glfw.GetTime()
		deltaTime := float32(now - lastTime)
		lastTime = now

		v.world.Update(deltaTime)
		v.rend.BeginFrame()
		v.world.Render()

		v.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// keyRune maps letter, digit and space keys to the lower-case runes the
// input manager binds.
func keyRune(key glfw.Key) (input.Key, bool) {
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		return input.Key('a' + rune(key-glfw.KeyA)), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return input.Key('0' + rune(key-glfw.Key0)), true
	case key == glfw.KeySpace:
		return ' ', true
	}
	return 0, false
}

func mouseButton(b glfw.MouseButton) (input.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft, true
	case glfw.MouseButtonRight:
		return input.MouseRight, true
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle, true
	}
	return 0, false
}
