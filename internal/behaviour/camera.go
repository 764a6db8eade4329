package behaviour

import (
	"SceneViewer/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the fly-through viewpoint of a world. It is an entity so it
// shares the transform model, but it is not picked or rendered.
type Camera struct {
	*Entity

	Projection mgl32.Mat4
	View       mgl32.Mat4

	// Lens, FOV in degrees.
	FOV    float32
	Width  float32
	Height float32
	Near   float32
	Far    float32

	// MaxPitch clamps looking up and down, in degrees.
	MaxPitch float32
	// FlySpeed in units per second.
	FlySpeed float32

	// OnLookStart and OnLookEnd let the window layer capture and release the cursor.
	OnLookStart func()
	OnLookEnd   func()

	pitch      float32
	forwardVal float32
	rightVal   float32
	upVal      float32
	looking    bool
}

// NewCamera creates a camera whose fly controls are registered with b.
func NewCamera(host Host, b Binder) *Camera {
	c := &Camera{
		Entity:   NewEntity(host, input.None, nil),
		FOV:      70,
		Width:    1280,
		Height:   720,
		Near:     1,
		Far:      300,
		MaxPitch: 80,
		FlySpeed: 3,
	}
	c.bind(b)
	c.UpdateMatrices()
	return c
}

func (c *Camera) bind(b Binder) {
	b.AddTrigger(input.KeySource('w'), input.Pressed, "fly-forward", func() { c.forwardVal = 1 })
	b.AddTrigger(input.KeySource('s'), input.Pressed, "fly-back", func() { c.forwardVal = -1 })
	b.AddTriggers(input.KeySources('w', 's'), input.Released, "fly-stop-forward", func() { c.forwardVal = 0 })

	b.AddTrigger(input.KeySource('a'), input.Pressed, "fly-left", func() { c.rightVal = -1 })
	b.AddTrigger(input.KeySource('d'), input.Pressed, "fly-right", func() { c.rightVal = 1 })
	b.AddTriggers(input.KeySources('a', 'd'), input.Released, "fly-stop-right", func() { c.rightVal = 0 })

	b.AddTriggers(input.KeySources(' ', 'e'), input.Pressed, "fly-up", func() { c.upVal = 1 })
	b.AddTriggers(input.KeySources('x', 'q'), input.Pressed, "fly-down", func() { c.upVal = -1 })
	b.AddTriggers(input.KeySources(' ', 'x', 'q', 'e'), input.Released, "fly-stop-up", func() { c.upVal = 0 })

	right := input.ButtonSource(input.MouseRight)
	b.AddTrigger(right, input.Pressed, "look-on", func() {
		c.looking = true
		if c.OnLookStart != nil {
			c.OnLookStart()
		}
	})
	b.AddTrigger(right, input.Released, "look-off", func() {
		c.looking = false
		if c.OnLookEnd != nil {
			c.OnLookEnd()
		}
	})

	b.AddAxis(input.MouseX, "look-right", func(v float32) { c.LookRight(v) })
	// Cursor y grows downwards.
	b.AddAxis(input.MouseY, "look-up", func(v float32) { c.LookUp(-v) })
}

// Looking reports whether mouse look is active.
func (c *Camera) Looking() bool { return c.looking }

// Pitch is the accumulated look-up angle in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// Update flies the camera along its own axes and refreshes the matrices if it moved.
func (c *Camera) Update(deltaTime float32) {
	c.Entity.Update(deltaTime)

	moved := false
	step := c.FlySpeed * deltaTime
	if c.forwardVal != 0 {
		c.Move(c.ForwardVector().Mul(step * c.forwardVal))
		moved = true
	}
	if c.rightVal != 0 {
		c.Move(c.RightVector().Mul(step * c.rightVal))
		moved = true
	}
	if c.upVal != 0 {
		c.Move(c.UpVector().Mul(step * c.upVal))
		moved = true
	}
	if moved {
		c.UpdateMatrices()
	}
}

// SetLens updates the lens settings and rebuilds the matrices.
func (c *Camera) SetLens(fov, width, height, near, far float32) {
	if height == 0 {
		height = 1
	}
	c.FOV = fov
	c.Width = width
	c.Height = height
	c.Near = near
	c.Far = far
	c.UpdateMatrices()
}

// UpdateMatrices rebuilds projection and view from the lens and transform.
func (c *Camera) UpdateMatrices() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Width/c.Height, c.Near, c.Far)
	pos := c.Position()
	c.View = mgl32.LookAtV(pos, pos.Add(c.ForwardVector()), c.UpVector())
}

// LookRight turns the camera about the world up axis so it never rolls.
func (c *Camera) LookRight(degrees float32) {
	if !c.looking {
		return
	}
	c.RotateBy(-degrees, UpVector, true)
	c.UpdateMatrices()
}

// LookUp tilts the camera about its own right axis, clamped to MaxPitch.
func (c *Camera) LookUp(degrees float32) {
	if !c.looking {
		return
	}
	target := mgl32.Clamp(c.pitch+degrees, -c.MaxPitch, c.MaxPitch)
	if amount := target - c.pitch; amount != 0 {
		c.RotateBy(amount, RightVector, false)
		c.pitch = target
	}
	c.UpdateMatrices()
}
