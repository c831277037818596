package ecs

// Store is a dense, creation-ordered collection of one entity kind.
// Removal is deferred: Remove queues an entity and Flush applies every queued
// removal at once. Each skips queued entities, so a phase can settle all of
// its hit and death decisions before anything leaves the collection.
type Store[T any] struct {
	name     string
	ids      IDAllocator
	order    []EntityID
	data     map[EntityID]*T
	doomed   map[EntityID]struct{}
	capacity int
}

// NewStore creates an empty store. capacity <= 0 means unbounded.
func NewStore[T any](name string, capacity int) *Store[T] {
	return &Store[T]{
		name:     name,
		order:    make([]EntityID, 0, 64),
		data:     make(map[EntityID]*T, 64),
		doomed:   make(map[EntityID]struct{}, 16),
		capacity: capacity,
	}
}

func (s *Store[T]) Name() string { return s.name }

// Spawn inserts c and returns its new ID. When the store is full the
// entity is dropped and ok is false.
func (s *Store[T]) Spawn(c *T) (id EntityID, ok bool) {
	if s.capacity > 0 && len(s.data) >= s.capacity {
		return 0, false
	}
	id = s.ids.Next()
	s.data[id] = c
	s.order = append(s.order, id)
	return id, true
}

// Get returns the entity even if it is queued for removal.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

// Remove queues id for the next Flush. It reports true only for the call
// that actually queued it, which lets callers run death logic exactly once.
func (s *Store[T]) Remove(id EntityID) bool {
	if _, ok := s.data[id]; !ok {
		return false
	}
	if _, doomed := s.doomed[id]; doomed {
		return false
	}
	s.doomed[id] = struct{}{}
	return true
}

// Pending is the number of queued removals.
func (s *Store[T]) Pending() int { return len(s.doomed) }

// Len counts live entities, excluding queued removals.
func (s *Store[T]) Len() int { return len(s.data) - len(s.doomed) }

// SetCapacity changes the bound for future spawns.
func (s *Store[T]) SetCapacity(n int) { s.capacity = n }

// LastID is the most recently issued ID.
func (s *Store[T]) LastID() EntityID { return s.ids.Last() }

// Each visits live entities in creation order. Entities spawned during the
// walk are not visited; entities removed during the walk are skipped.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		id := s.order[i]
		if _, doomed := s.doomed[id]; doomed {
			continue
		}
		fn(id, s.data[id])
	}
}

// Flush applies all queued removals, keeping creation order, and returns
// how many entities were removed.
func (s *Store[T]) Flush() int {
	if len(s.doomed) == 0 {
		return 0
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, doomed := s.doomed[id]; doomed {
			delete(s.data, id)
			continue
		}
		kept = append(kept, id)
	}
	n := len(s.doomed)
	s.order = kept
	clear(s.doomed)
	return n
}

// Clear empties the store and restarts ID numbering.
func (s *Store[T]) Clear() {
	s.order = s.order[:0]
	clear(s.data)
	clear(s.doomed)
	s.ids.Reset()
}
