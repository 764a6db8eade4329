package behaviour

import "github.com/go-gl/mathgl/mgl32"

// RotatingComponent spins its owner indefinitely, pausing while the owner
// is selected for manipulation.
type RotatingComponent struct {
	BaseComponent

	// Speed in degrees per second.
	Speed float32
	Axis  mgl32.Vec3
	// LocalSpace rotates about the owner's own axis instead of the world's.
	LocalSpace bool

	interactable *InteractableComponent
}

// AddRotating attaches a rotating behaviour to e.
func AddRotating(e *Entity, speed float32, axis mgl32.Vec3) *RotatingComponent {
	c := &RotatingComponent{Speed: speed, Axis: axis, LocalSpace: true}
	e.AddComponent(c)
	return c
}

func (c *RotatingComponent) Kind() Kind { return KindRotating }

// BeginPlay looks up the sibling interactable behaviour. Without one the
// component never pauses.
func (c *RotatingComponent) BeginPlay() {
	if owner := c.Owner(); owner != nil {
		c.interactable = owner.Interactable()
	}
}

// Suspended reports whether the owner is currently held by the user.
func (c *RotatingComponent) Suspended() bool {
	return c.interactable != nil && c.interactable.Selected()
}

func (c *RotatingComponent) Update(deltaTime float32) {
	owner := c.Owner()
	if owner == nil || c.Suspended() {
		return
	}
	owner.RotateBy(c.Speed*deltaTime, c.Axis, !c.LocalSpace)
}
