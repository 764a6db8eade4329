package behaviour

import "SceneViewer/internal/input"

// Handle is the stable address of an entity in its world. It doubles as the
// identity used for hover bindings.
type Handle = input.EntityID

// Entity is a placeable, renderable object with an ordered set of behaviours.
type Entity struct {
	Transform
	Model Model

	handle      Handle
	host        Host
	components  []componentSlot
	firstOfKind map[Kind]int
}

// NewEntity creates an entity with an identity transform and no components.
func NewEntity(host Host, handle Handle, model Model) *Entity {
	return &Entity{
		Transform:   NewTransform(),
		Model:       model,
		handle:      handle,
		host:        host,
		firstOfKind: make(map[Kind]int),
	}
}

func (e *Entity) Handle() Handle { return e.handle }
func (e *Entity) Host() Host     { return e.host }

// AddComponent binds c to this entity and appends it after any existing
// components.
func (e *Entity) AddComponent(c Component) Component {
	c.attach(e.handle, e.host)
	if _, ok := e.firstOfKind[c.Kind()]; !ok {
		e.firstOfKind[c.Kind()] = len(e.components)
	}
	e.components = append(e.components, componentSlot{component: c})
	return c
}

// Component returns the first component of kind, or nil.
func (e *Entity) Component(kind Kind) Component {
	i, ok := e.firstOfKind[kind]
	if !ok {
		return nil
	}
	return e.components[i].component
}

// Components returns the components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	for i, s := range e.components {
		out[i] = s.component
	}
	return out
}

// Interactable returns the entity's interactable behaviour, if any.
func (e *Entity) Interactable() *InteractableComponent {
	c, _ := e.Component(KindInteractable).(*InteractableComponent)
	return c
}

// Update advances every component in insertion order, starting any that
// have not begun play yet.
func (e *Entity) Update(deltaTime float32) {
	for i := range e.components {
		slot := &e.components[i]
		if slot.state == uninitialized {
			slot.component.BeginPlay()
			slot.state = active
		}
		slot.component.Update(deltaTime)
	}
}

// Render uploads the model matrix and draws the model with shader.
func (e *Entity) Render(shader Shader) {
	shader.SetMat4(UniformModel, e.ModelMatrix())
	if e.Model != nil {
		e.Model.Draw(shader)
	}
}
