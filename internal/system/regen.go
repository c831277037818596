package system

import (
	"time"

	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/scripting"
	"github.com/polybius/arena/internal/world"
)

// RegenSystem restores a little health on a fixed interval of simulation
// time. Phase 6 (Regen). The amount comes from calc_regen_amount so it can
// scale with level.
type RegenSystem struct {
	world  *world.State
	combat *Combat
	lua    *scripting.Engine

	acc time.Duration
}

func NewRegenSystem(ws *world.State, combat *Combat, lua *scripting.Engine) *RegenSystem {
	return &RegenSystem{world: ws, combat: combat, lua: lua}
}

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhaseRegen }

func (s *RegenSystem) Update(dt time.Duration) {
	t := s.world.Tuning.Regen
	s.acc += dt
	for s.acc >= t.Interval {
		s.acc -= t.Interval
		p := &s.world.Player
		if p.Health <= 0 || p.Health >= p.MaxHealth {
			continue
		}
		s.combat.Heal(s.lua.RegenAmount(scripting.RegenContext{
			Health:    p.Health,
			MaxHealth: p.MaxHealth,
			Level:     p.Level,
			Base:      t.Amount,
		}))
	}
}

// Reset clears the interval accumulator.
func (s *RegenSystem) Reset() { s.acc = 0 }
