package ecs

// EntityID is a handle into one Store. IDs start at 1, increase
// monotonically and are never reused until the store is cleared.
type EntityID uint64

func (id EntityID) IsZero() bool { return id == 0 }

// IDAllocator hands out monotonically increasing EntityIDs.
type IDAllocator struct {
	last EntityID
}

// Next returns a fresh ID.
func (a *IDAllocator) Next() EntityID {
	a.last++
	return a.last
}

// Last returns the most recently issued ID (0 if none).
func (a *IDAllocator) Last() EntityID { return a.last }

// Reset restarts numbering at 1.
func (a *IDAllocator) Reset() { a.last = 0 }
