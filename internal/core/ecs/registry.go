package ecs

// Flusher is implemented by every Store so the Registry can check and reset
// all collections without knowing their element types.
type Flusher interface {
	Name() string
	Pending() int
	Flush() int
	Clear()
}

// Registry tracks all entity stores of a world.
type Registry struct {
	stores []Flusher
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Flusher, 0, 8),
	}
}

// Register adds a store to the registry.
func (r *Registry) Register(store Flusher) {
	r.stores = append(r.stores, store)
}

// Unflushed returns the names of stores still holding queued removals.
// Empty after every phase of a well-formed tick.
func (r *Registry) Unflushed() []string {
	var names []string
	for _, s := range r.stores {
		if s.Pending() > 0 {
			names = append(names, s.Name())
		}
	}
	return names
}

// ClearAll empties every store.
func (r *Registry) ClearAll() {
	for _, s := range r.stores {
		s.Clear()
	}
}
