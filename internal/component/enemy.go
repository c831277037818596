package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Enemy is a pursuing cube. Health starts at 3; the tick that brings it to
// zero removes the enemy.
type Enemy struct {
	Position  mgl64.Vec3
	Health    int
	CreatedAt time.Duration
	Hit       bool          // set by the first projectile hit
	LastHitAt time.Duration // drives the hit flash only
}
