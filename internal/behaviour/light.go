package behaviour

import "github.com/go-gl/mathgl/mgl32"

// Light is an entity that also illuminates the scene.
type Light struct {
	*Entity

	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
}

// NewLight wraps e with light colours.
func NewLight(e *Entity, ambient, diffuse, specular mgl32.Vec3) *Light {
	return &Light{Entity: e, Ambient: ambient, Diffuse: diffuse, Specular: specular}
}
