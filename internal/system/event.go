package system

import (
	"time"

	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
)

// EventDispatchSystem delivers the events emitted during the previous tick.
// Registered ahead of InputSystem so handlers observe a settled world.
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
