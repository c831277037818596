package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: dispatch last tick's events, apply input commands
	PhasePlayer                  // 1: player locomotion
	PhaseEnemy                   // 2: spawn, pursuit, contact damage
	PhaseProjectile              // 3: advance, hits, expiry
	PhaseParticle                // 4: explosion particles
	PhasePickup                  // 5: pickup collection
	PhaseRegen                   // 6: passive health regen
	PhaseOutput                  // 7: publish snapshot
)

var phaseNames = [...]string{"input", "player", "enemy", "projectile", "particle", "pickup", "regen", "output"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
