package main

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
)

// nearestEnemy returns the position of the enemy closest to the player.
func nearestEnemy(snap *world.Snapshot) (mgl64.Vec3, bool) {
	best := math.Inf(1)
	var pos mgl64.Vec3
	for _, e := range snap.Enemies {
		if d := mathx.Distance(e.Position, snap.Player.Position); d < best {
			best, pos = d, e.Position
		}
	}
	return pos, len(snap.Enemies) > 0
}
