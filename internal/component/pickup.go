package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// PickupKind selects what a pickup grants on collection.
type PickupKind int

const (
	PickupXP PickupKind = iota
	PickupHealth
)

func (k PickupKind) String() string {
	switch k {
	case PickupXP:
		return "xp"
	case PickupHealth:
		return "health"
	}
	return "unknown"
}

type Pickup struct {
	Kind      PickupKind
	Position  mgl64.Vec3
	Value     int
	CreatedAt time.Duration
}
