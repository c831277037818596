package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// Particle is a cosmetic explosion fragment with no gameplay effect.
type Particle struct {
	Position  mgl64.Vec3
	Velocity  mgl64.Vec3
	Color     colorful.Color
	Scale     float64
	Lifetime  time.Duration
	CreatedAt time.Duration
}
