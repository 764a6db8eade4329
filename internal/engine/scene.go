package engine

import (
	"SceneViewer/internal/behaviour"
	"SceneViewer/internal/config"
	"SceneViewer/internal/loader"
	"SceneViewer/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// surface is implemented by models that accept textures and material overrides.
type surface interface {
	AddTexture(path string, kind loader.TextureKind)
	SetMaterial(mat loader.Material)
}

// BuildScene populates w from cfg: camera lens and placement, lights,
// entities and the skybox. A skybox that fails to load leaves the scene
// without one.
func BuildScene(w *World, cfg *config.Config) {
	cam := w.Camera()
	cam.FlySpeed = cfg.Camera.FlySpeed
	cam.MaxPitch = cfg.Camera.MaxPitch
	cam.SetPosition(cfg.Camera.Position)
	cam.SetLens(cfg.Camera.FOV, float32(cfg.Window.Width), float32(cfg.Window.Height), cfg.Camera.Near, cfg.Camera.Far)

	for _, l := range cfg.Lights {
		w.AddLight(l.Position, l.Ambient, l.Diffuse, l.Specular)
	}
	for _, ec := range cfg.Entities {
		e := spawnEntity(w, ec)
		logger.Log.Debug("Spawned entity",
			zap.String("name", ec.Name),
			zap.Uint32("handle", uint32(e.Handle())))
	}

	// Logged inside; the scene renders without a skybox.
	_ = w.SetSkyboxTexture(
		cfg.Skybox.Right, cfg.Skybox.Left,
		cfg.Skybox.Top, cfg.Skybox.Bottom,
		cfg.Skybox.Back, cfg.Skybox.Front)

	logger.Log.Info("Scene ready",
		zap.Int("lights", len(w.Lights())),
		zap.Int("entities", len(w.Entities())))
}

func spawnEntity(w *World, ec config.EntityConfig) *behaviour.Entity {
	var e *behaviour.Entity
	if ec.Torus != nil {
		t := ec.Torus
		e = w.CreateEntityFromMesh(loader.Torus(t.Outer, t.Inner, t.Rings, t.Sides))
	} else {
		e = w.CreateEntity(ec.Model, loader.ImportSettings{
			InvertYCoord:       ec.InvertY,
			RecalculateNormals: ec.RecalculateNormals,
		})
	}

	if s, ok := e.Model.(surface); ok {
		applySurface(s, ec)
	}

	e.SetPosition(ec.Position)
	if ec.Scale != (mgl32.Vec3{}) {
		e.SetScale(ec.Scale)
	}
	if r := ec.Rotate; r != nil {
		e.RotateBy(r.Degrees, r.Axis, false)
	}
	if !ec.Locked {
		behaviour.AddInteractable(e)
	}
	if r := ec.Rotating; r != nil {
		rc := behaviour.AddRotating(e, r.Speed, r.Axis)
		rc.LocalSpace = !r.Global
	}
	return e
}

func applySurface(s surface, ec config.EntityConfig) {
	for _, tex := range []struct {
		path string
		kind loader.TextureKind
	}{
		{ec.Textures.Diffuse, loader.TextureDiffuse},
		{ec.Textures.Specular, loader.TextureSpecular},
		{ec.Textures.Normal, loader.TextureNormal},
	} {
		if tex.path != "" {
			s.AddTexture(tex.path, tex.kind)
		}
	}
	if m := ec.Material; m != nil {
		s.SetMaterial(loader.Material{
			Name:      ec.Name,
			Diffuse:   m.Diffuse,
			Specular:  m.Specular,
			Shininess: m.Shininess,
		})
	}
}
