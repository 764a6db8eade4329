package behaviour

import "SceneViewer/internal/input"

// Kind tags a component's behaviour so siblings can be found without
// reflection.
type Kind int

const (
	KindCustom Kind = iota
	KindRotating
	KindInteractable
)

func (k Kind) String() string {
	switch k {
	case KindRotating:
		return "rotating"
	case KindInteractable:
		return "interactable"
	default:
		return "custom"
	}
}

// Component is a per-frame behaviour owned by exactly one entity.
// Implementations embed BaseComponent.
type Component interface {
	Kind() Kind
	// BeginPlay runs once, before the first Update.
	BeginPlay()
	Update(deltaTime float32)

	attach(owner Handle, host Host)
}

// Binder is the part of the input manager components register with.
type Binder interface {
	AddTrigger(source input.Source, phase input.Phase, action string, fire func())
	AddTriggers(sources []input.Source, phase input.Phase, action string, fire func())
	AddAxis(axis input.Axis, action string, fire func(float32))
	AddEvent(target input.EntityID, event input.Event, action string, fire func())
}

// Host resolves handles and exposes the shared services of the world an
// entity lives in.
type Host interface {
	Entity(h Handle) *Entity
	Input() Binder
	Camera() *Camera
}

// BaseComponent provides the owner binding and no-op lifecycle hooks.
type BaseComponent struct {
	owner Handle
	host  Host
}

func (c *BaseComponent) Kind() Kind          { return KindCustom }
func (c *BaseComponent) BeginPlay()          {}
func (c *BaseComponent) Update(_ float32)    {}
func (c *BaseComponent) OwnerHandle() Handle { return c.owner }
func (c *BaseComponent) Host() Host          { return c.host }

func (c *BaseComponent) attach(owner Handle, host Host) {
	c.owner = owner
	c.host = host
}

// Owner resolves the owning entity. It is nil once the entity is gone.
func (c *BaseComponent) Owner() *Entity {
	if c.host == nil {
		return nil
	}
	return c.host.Entity(c.owner)
}

type lifecycle int

const (
	uninitialized lifecycle = iota
	active
)

type componentSlot struct {
	component Component
	state     lifecycle
}
