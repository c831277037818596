package component

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Player stores the locomotion and progression state of the single player.
// Pure data, zero methods: the player controller writes the
// motion fields, the combat coordinator writes Health/XP/Level.
type Player struct {
	Position mgl64.Vec3
	View     mgl64.Vec3 // unit view direction, sampled each tick

	Velocity       mgl64.Vec3 // current horizontal velocity (x = strafe, z = forward)
	TargetVelocity mgl64.Vec3 // intent velocity (x = strafe, z = forward)
	VerticalSpeed  float64

	Grounded      bool
	DoubleJump    bool          // double jump still available this airtime
	LastJumpAt    time.Duration // simulation time of the last accepted jump
	JumpRequested bool          // latched by input, consumed by the controller

	Health    int
	MaxHealth int
	XP        int
	Level     int
}
