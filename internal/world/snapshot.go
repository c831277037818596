package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
)

// DefaultView looks down -Z, the camera's initial heading.
var DefaultView = mgl64.Vec3{0, 0, -1}

// RunState is the session-level run state shown to the UI.
type RunState int

const (
	Running RunState = iota
	Paused
	Over
)

func (r RunState) String() string {
	switch r {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	}
	return "unknown"
}

type PlayerView struct {
	Position mgl64.Vec3
	View     mgl64.Vec3
	Grounded bool
}

type EnemyView struct {
	ID       ecs.EntityID
	Position mgl64.Vec3
	Health   int
	Flashing bool
}

type ProjectileView struct {
	ID        ecs.EntityID
	Position  mgl64.Vec3
	Direction mgl64.Vec3
}

type ParticleView struct {
	ID       ecs.EntityID
	Position mgl64.Vec3
	Color    colorful.Color
	Scale    float64
	Age      float64 // fraction of lifetime used, 0..1
}

type PickupView struct {
	ID       ecs.EntityID
	Kind     component.PickupKind
	Position mgl64.Vec3
	Value    int
}

// HUD carries the numbers the UI collaborator displays.
type HUD struct {
	Health        int
	MaxHealth     int
	XP            int
	Level         int
	XPToNextLevel int
	State         RunState
}

// Snapshot is a read-only copy of the world after a tick.
type Snapshot struct {
	Tick        uint64
	Time        time.Duration
	RoomSize    float64
	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
	Particles   []ParticleView
	Pickups     []PickupView
	HUD         HUD
}

// Capture copies the state into a new Snapshot. Collections are listed in
// creation order.
func Capture(s *State, hud HUD) *Snapshot {
	t := s.Tuning
	snap := &Snapshot{
		Tick:     s.Tick,
		Time:     s.Now,
		RoomSize: t.Arena.RoomSize,
		Player: PlayerView{
			Position: s.Player.Position,
			View:     s.Player.View,
			Grounded: s.Player.Grounded,
		},
		Enemies:     make([]EnemyView, 0, s.Enemies.Len()),
		Projectiles: make([]ProjectileView, 0, s.Projectiles.Len()),
		Particles:   make([]ParticleView, 0, s.Particles.Len()),
		Pickups:     make([]PickupView, 0, s.Pickups.Len()),
		HUD:         hud,
	}

	s.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) {
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID:       id,
			Position: e.Position,
			Health:   e.Health,
			Flashing: e.Hit && s.Now-e.LastHitAt < t.Enemy.HitFlash,
		})
	})
	s.Projectiles.Each(func(id ecs.EntityID, p *component.Projectile) {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID:        id,
			Position:  p.Position,
			Direction: p.Direction,
		})
	})
	s.Particles.Each(func(id ecs.EntityID, p *component.Particle) {
		age := 0.0
		if p.Lifetime > 0 {
			age = mgl64.Clamp(float64(s.Now-p.CreatedAt)/float64(p.Lifetime), 0, 1)
		}
		snap.Particles = append(snap.Particles, ParticleView{
			ID:       id,
			Position: p.Position,
			Color:    p.Color,
			Scale:    p.Scale,
			Age:      age,
		})
	})
	s.Pickups.Each(func(id ecs.EntityID, p *component.Pickup) {
		snap.Pickups = append(snap.Pickups, PickupView{
			ID:       id,
			Kind:     p.Kind,
			Position: p.Position,
			Value:    p.Value,
		})
	})
	return snap
}

// Enemy returns the view of one enemy.
func (s *Snapshot) Enemy(id ecs.EntityID) (EnemyView, bool) {
	for _, e := range s.Enemies {
		if e.ID == id {
			return e, true
		}
	}
	return EnemyView{}, false
}
