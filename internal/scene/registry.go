package scene

import (
	"fmt"

	"github.com/Faultbox/dentview/pkg/math"
)

// ModelID addresses a model in a Registry. IDs are dense and stable for the
// registry's lifetime.
type ModelID int

// Entity is the mutable, non-UI part of a model: where its geometry came from,
// the loaded geometry and its local transform.
type Entity struct {
	ID     ModelID
	Name   string
	Source string
	Yaw    float32
	Group  *Group
}

// Transform returns the model's local-to-world matrix.
func (e *Entity) Transform() math.Mat4 {
	return math.RotateY(e.Yaw)
}

// Registry is the arena of model entities. Controllers address entries by ID
// rather than holding pointers into the render tree.
type Registry struct {
	entities []*Entity
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a model and returns its ID.
func (r *Registry) Add(name, source string) ModelID {
	id := ModelID(len(r.entities))
	r.entities = append(r.entities, &Entity{ID: id, Name: name, Source: source})
	return id
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	return len(r.entities)
}

// Get returns the entity for id.
func (r *Registry) Get(id ModelID) (*Entity, error) {
	if id < 0 || int(id) >= len(r.entities) {
		return nil, fmt.Errorf("model %d: not registered", id)
	}
	return r.entities[id], nil
}

// IDs returns every registered ID in registration order.
func (r *Registry) IDs() []ModelID {
	ids := make([]ModelID, len(r.entities))
	for i := range r.entities {
		ids[i] = ModelID(i)
	}
	return ids
}

// SetGroup attaches loaded geometry to a model.
func (r *Registry) SetGroup(id ModelID, g *Group) error {
	e, err := r.Get(id)
	if err != nil {
		return err
	}
	e.Group = g
	return nil
}

// Rotate adds delta radians to the model's yaw.
func (r *Registry) Rotate(id ModelID, delta float32) error {
	e, err := r.Get(id)
	if err != nil {
		return err
	}
	e.Yaw += delta
	return nil
}

// Reset drops all entities.
func (r *Registry) Reset() {
	r.entities = nil
}
