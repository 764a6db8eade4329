package behaviour

import (
	"SceneViewer/internal/input"

	"github.com/go-gl/mathgl/mgl32"
)

// ManipulateSensitivity scales mouse deltas into world units for move and scale.
const ManipulateSensitivity float32 = 0.1

// Modifier keys for manipulation.
const (
	MoveKey  input.Key = 'g'
	ScaleKey input.Key = 'f'
)

// InteractableComponent lets the user grab its owner with the left mouse
// button while hovered and rotate, move or scale it with the mouse.
type InteractableComponent struct {
	BaseComponent

	selected         bool
	selectionPressed bool
	movePressed      bool
	scalePressed     bool
	hovered          bool
}

// AddInteractable attaches an interactable behaviour to e and registers
// its input bindings.
func AddInteractable(e *Entity) *InteractableComponent {
	c := &InteractableComponent{}
	e.AddComponent(c)
	c.bind(e.Host().Input())
	return c
}

func (c *InteractableComponent) Kind() Kind { return KindInteractable }

func (c *InteractableComponent) Selected() bool { return c.selected }
func (c *InteractableComponent) Hovered() bool  { return c.hovered }

func (c *InteractableComponent) bind(b Binder) {
	left := input.ButtonSource(input.MouseLeft)
	b.AddTrigger(left, input.Pressed, "select", func() {
		c.selectionPressed = true
		c.selected = c.hovered
	})
	b.AddTrigger(left, input.Released, "deselect", func() {
		c.selectionPressed = false
		c.selected = false
	})

	b.AddTrigger(input.KeySource(MoveKey), input.Pressed, "move-on", func() { c.movePressed = true })
	b.AddTrigger(input.KeySource(MoveKey), input.Released, "move-off", func() { c.movePressed = false })
	b.AddTrigger(input.KeySource(ScaleKey), input.Pressed, "scale-on", func() { c.scalePressed = true })
	b.AddTrigger(input.KeySource(ScaleKey), input.Released, "scale-off", func() { c.scalePressed = false })

	b.AddEvent(c.owner, input.MouseOver, "hover-on", func() { c.hovered = true })
	b.AddEvent(c.owner, input.MouseOut, "hover-off", func() { c.hovered = false })

	b.AddAxis(input.MouseX, "manipulate-right", c.ManipulateRight)
	b.AddAxis(input.MouseY, "manipulate-up", c.ManipulateUp)
}

// ManipulateUp applies vertical mouse motion. Screen space grows downwards,
// so move and scale invert the delta.
func (c *InteractableComponent) ManipulateUp(v float32) {
	c.manipulate(-v, v, func(cam *Camera) (mgl32.Vec3, mgl32.Vec3) {
		return cam.UpVector(), cam.RightVector()
	})
}

// ManipulateRight applies horizontal mouse motion.
func (c *InteractableComponent) ManipulateRight(v float32) {
	c.manipulate(v, v, func(cam *Camera) (mgl32.Vec3, mgl32.Vec3) {
		return cam.RightVector(), cam.UpVector()
	})
}

// manipulate resolves one axis event: move beats scale beats rotate.
// linear feeds move and scale, degrees feeds rotation, and axes returns the
// camera vectors to move along and to rotate about.
func (c *InteractableComponent) manipulate(linear, degrees float32, axes func(*Camera) (mgl32.Vec3, mgl32.Vec3)) {
	if !c.selected {
		return
	}
	owner := c.Owner()
	if owner == nil {
		return
	}
	moveAxis, rotateAxis := axes(c.host.Camera())

	switch {
	case c.movePressed:
		owner.Move(moveAxis.Mul(linear * ManipulateSensitivity))
	case c.scalePressed:
		d := linear * ManipulateSensitivity
		owner.SetScale(owner.Scale().Add(mgl32.Vec3{d, d, d}))
	default:
		owner.RotateBy(degrees, rotateAxis, true)
	}
}
