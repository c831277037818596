package system

import (
	"time"

	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/world"
)

// OutputSystem captures the world into a Snapshot at the end of a tick and
// hands it to publish. Phase 7 (Output).
type OutputSystem struct {
	world   *world.State
	combat  *Combat
	state   func() world.RunState
	publish func(*world.Snapshot)
}

func NewOutputSystem(ws *world.State, combat *Combat, state func() world.RunState, publish func(*world.Snapshot)) *OutputSystem {
	return &OutputSystem{world: ws, combat: combat, state: state, publish: publish}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

// Update captures the world and publishes it. The session also runs this
// phase alone on ticks where the simulation is paused or over.
func (s *OutputSystem) Update(_ time.Duration) {
	p := &s.world.Player
	snap := world.Capture(s.world, world.HUD{
		Health:        p.Health,
		MaxHealth:     p.MaxHealth,
		XP:            p.XP,
		Level:         p.Level,
		XPToNextLevel: s.combat.XPToNextLevel(),
		State:         s.state(),
	})
	s.publish(snap)
}
