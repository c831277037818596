package system

import (
	"time"

	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
)

// PickupSystem collects pickups within reach of the player.
// Phase 5 (Pickup). A dead player collects nothing.
type PickupSystem struct {
	world  *world.State
	combat *Combat
	bus    *event.Bus
}

func NewPickupSystem(ws *world.State, combat *Combat, bus *event.Bus) *PickupSystem {
	return &PickupSystem{world: ws, combat: combat, bus: bus}
}

func (s *PickupSystem) Phase() coresys.Phase { return coresys.PhasePickup }

func (s *PickupSystem) Update(_ time.Duration) {
	if s.combat.Dead() {
		return
	}
	player := s.world.Player.Position
	radius := s.world.Tuning.Pickup.Radius

	s.world.Pickups.Each(func(id ecs.EntityID, p *component.Pickup) {
		if mathx.Distance(p.Position, player) >= radius {
			return
		}
		switch p.Kind {
		case component.PickupXP:
			s.combat.GrantXP(p.Value)
		case component.PickupHealth:
			s.combat.Heal(p.Value)
		}
		s.world.Pickups.Remove(id)
		event.Emit(s.bus, event.PickupCollected{PickupID: id, Kind: p.Kind.String(), Value: p.Value})
	})
	s.world.Pickups.Flush()
}
