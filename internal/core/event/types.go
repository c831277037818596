package event

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/core/ecs"
)

// DeathCause says which path detected an enemy death.
type DeathCause int

const (
	CauseProjectile DeathCause = iota
	CauseContact
)

func (c DeathCause) String() string {
	if c == CauseContact {
		return "contact"
	}
	return "projectile"
}

type EnemySpawned struct {
	EnemyID  ecs.EntityID
	Position mgl64.Vec3
}

type EnemyHit struct {
	EnemyID ecs.EntityID
	Health  int
}

type EnemyKilled struct {
	EnemyID  ecs.EntityID
	Position mgl64.Vec3
	Cause    DeathCause
}

type ProjectileFired struct {
	ProjectileID ecs.EntityID
	Position     mgl64.Vec3
	Direction    mgl64.Vec3
}

type PlayerDamaged struct {
	Amount int
	Health int
}

type PlayerHealed struct {
	Amount int
	Health int
}

type PlayerJumped struct {
	Double bool
}

type XPGained struct {
	Amount int
	XP     int
}

type PlayerLeveledUp struct {
	Level int
}

type PickupCollected struct {
	PickupID ecs.EntityID
	Kind     string
	Value    int
}

// RunOver is emitted once when player health reaches zero.
type RunOver struct {
	Level   int
	Elapsed time.Duration
}
