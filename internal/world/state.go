package world

import (
	"time"

	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	"github.com/polybius/arena/internal/data"
)

// State holds every simulated entity of one session.
// Accessed only from the game loop goroutine; no locks needed.
type State struct {
	Player      component.Player
	Enemies     *ecs.Store[component.Enemy]
	Projectiles *ecs.Store[component.Projectile]
	Particles   *ecs.Store[component.Particle]
	Pickups     *ecs.Store[component.Pickup]

	Registry *ecs.Registry
	Tuning   *data.Tuning

	Now  time.Duration // simulation time of the current tick
	Tick uint64
}

func NewState(t *data.Tuning) *State {
	s := &State{
		Enemies:     ecs.NewStore[component.Enemy]("enemies", t.Enemy.MaxAlive),
		Projectiles: ecs.NewStore[component.Projectile]("projectiles", t.Projectile.MaxAlive),
		Particles:   ecs.NewStore[component.Particle]("particles", t.Particle.MaxAlive),
		Pickups:     ecs.NewStore[component.Pickup]("pickups", t.Pickup.MaxAlive),
		Registry:    ecs.NewRegistry(),
		Tuning:      t,
	}
	s.Registry.Register(s.Enemies)
	s.Registry.Register(s.Projectiles)
	s.Registry.Register(s.Particles)
	s.Registry.Register(s.Pickups)
	s.resetPlayer()
	return s
}

// Reset empties every collection, restores the player and rewinds
// simulation time. A new tuning table, if non-nil, takes effect here.
func (s *State) Reset(t *data.Tuning) {
	if t != nil {
		s.Tuning = t
		s.Enemies.SetCapacity(t.Enemy.MaxAlive)
		s.Projectiles.SetCapacity(t.Projectile.MaxAlive)
		s.Particles.SetCapacity(t.Particle.MaxAlive)
		s.Pickups.SetCapacity(t.Pickup.MaxAlive)
	}
	s.Registry.ClearAll()
	s.Now = 0
	s.Tick = 0
	s.resetPlayer()
}

func (s *State) resetPlayer() {
	pt := s.Tuning.Player
	s.Player = component.Player{
		Position:   pt.Start(),
		View:       DefaultView,
		Grounded:   pt.StartPosition[1] <= pt.GroundLevel(),
		DoubleJump: true,
		LastJumpAt: -pt.JumpCooldown,
		Health:     pt.MaxHealth,
		MaxHealth:  pt.MaxHealth,
		Level:      1,
	}
}
