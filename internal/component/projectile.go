package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Projectile travels along a direction fixed at creation.
type Projectile struct {
	Position  mgl64.Vec3
	Direction mgl64.Vec3 // unit vector
	CreatedAt time.Duration
}
