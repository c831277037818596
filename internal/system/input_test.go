package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/input"
)

func TestInputAppliesIntent(t *testing.T) {
	f := newFixture(t)
	proj := NewProjectileSystem(f.world, f.combat, f.bus, f.log)
	s := NewInputSystem(f.world, proj, f.log)
	speed := f.world.Tuning.Player.MovementSpeed

	s.Enqueue(
		input.Move(input.AxisForward, 1),
		input.Move(input.AxisStrafe, -3),  // clamped to -1
		input.LookAt(mgl64.Vec3{0, 0, 0}), // ignored
		input.LookAt(mgl64.Vec3{2, 0, 0}),
		input.Command{Kind: input.Jump},
		input.Command{Kind: input.Fire},
	)
	s.Update(tick)

	p := f.world.Player
	if p.TargetVelocity != (mgl64.Vec3{-speed, 0, speed}) {
		t.Fatalf("target velocity = %v", p.TargetVelocity)
	}
	if p.View != (mgl64.Vec3{1, 0, 0}) {
		t.Fatalf("view = %v", p.View)
	}
	if !p.JumpRequested {
		t.Fatal("jump not latched")
	}
	if f.world.Projectiles.Len() != 1 {
		t.Fatal("fire not applied")
	}
	if len(s.pending) != 0 {
		t.Fatal("commands not consumed")
	}
}
