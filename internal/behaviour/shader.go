package behaviour

import "github.com/go-gl/mathgl/mgl32"

// Uniform names shared by every shader program.
const (
	UniformModel        = "model"
	UniformView         = "view"
	UniformProjection   = "projection"
	UniformViewPosition = "viewPosition"
	UniformColourCode   = "colourCode"
	UniformLightColour  = "lightColour"
)

// Shader is a bound program that accepts uniform values by name.
type Shader interface {
	Use()
	SetMat4(name string, m mgl32.Mat4)
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetUint(name string, v uint32)
}

// Model is the drawable geometry owned by an entity.
type Model interface {
	Draw(shader Shader)
	BoundingRadius() float32
}
