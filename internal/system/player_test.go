package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/core/event"
)

const tick = 16 * time.Millisecond

func newPlayerSystem(t *testing.T) (*PlayerSystem, *fixture) {
	f := newFixture(t)
	return NewPlayerSystem(f.world, f.bus, f.log), f
}

func (f *fixture) run(s interface{ Update(time.Duration) }, n int) {
	for i := 0; i < n; i++ {
		f.advance(tick)
		s.Update(tick)
	}
}

func TestPlayerMovesAlongView(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	p.View = mgl64.Vec3{1, 0, 0}
	p.TargetVelocity = mgl64.Vec3{0, 0, f.world.Tuning.Player.MovementSpeed}

	f.run(s, 60)

	if p.Position.X() <= 1 {
		t.Fatalf("player did not move along +x: %v", p.Position)
	}
	if math.Abs(p.Position.Z()) > 1e-9 {
		t.Fatalf("player drifted in z: %v", p.Position)
	}
	if !p.Grounded || p.Position.Y() != f.world.Tuning.Player.GroundLevel() {
		t.Fatalf("player left the floor: %v grounded=%v", p.Position, p.Grounded)
	}
}

func TestPlayerStrafeRight(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	p.TargetVelocity = mgl64.Vec3{f.world.Tuning.Player.MovementSpeed, 0, 0}

	f.run(s, 30)

	// Facing -z, right is +x.
	if p.Position.X() <= 0 {
		t.Fatalf("strafe right went to %v", p.Position)
	}
}

func TestPlayerVelocitySmoothing(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	speed := f.world.Tuning.Player.MovementSpeed
	p.TargetVelocity = mgl64.Vec3{0, 0, speed}

	f.run(s, 1)
	if v := p.Velocity.Z(); v <= 0 || v >= speed {
		t.Fatalf("velocity after one tick = %v, want partial", v)
	}
	// A huge step clamps the lerp factor at 1: no overshoot.
	f.advance(time.Second)
	s.Update(time.Second)
	if v := p.Velocity.Z(); v != speed {
		t.Fatalf("velocity = %v, want %v", v, speed)
	}
}

func TestPlayerStaysInsideRoom(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	p.View = mgl64.Vec3{1, 0, 0}
	p.TargetVelocity = mgl64.Vec3{0, 0, 1000}

	f.run(s, 200)

	half := f.world.Tuning.Arena.HalfExtent()
	if p.Position.X() != half {
		t.Fatalf("x = %v, want clamped to %v", p.Position.X(), half)
	}
}

func TestJumpAndDoubleJump(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	jumps := record[event.PlayerJumped](f)
	ground := f.world.Tuning.Player.GroundLevel()

	p.JumpRequested = true
	f.run(s, 1)
	if p.Grounded || p.Position.Y() <= ground {
		t.Fatalf("jump did not lift: %v", p.Position)
	}
	if !p.DoubleJump {
		t.Fatal("double jump not armed")
	}

	f.run(s, 5)
	p.JumpRequested = true
	f.run(s, 1)
	if p.DoubleJump {
		t.Fatal("double jump still available")
	}
	if want := f.world.Tuning.Player.DoubleJumpForce; p.VerticalSpeed >= want || p.VerticalSpeed < want-1 {
		t.Fatalf("vertical speed = %v after double jump", p.VerticalSpeed)
	}

	// Third press while airborne does nothing.
	p.JumpRequested = true
	vy := p.VerticalSpeed
	f.run(s, 1)
	if p.VerticalSpeed >= vy {
		t.Fatal("third jump accepted")
	}

	f.run(s, 300)
	if !p.Grounded || p.Position.Y() != ground || !p.DoubleJump {
		t.Fatalf("landing not settled: %+v", p)
	}

	f.flush()
	if len(*jumps) != 2 || (*jumps)[0].Double || !(*jumps)[1].Double {
		t.Fatalf("jumps = %+v", *jumps)
	}
}

func TestJumpCooldown(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	cooldown := f.world.Tuning.Player.JumpCooldown

	// Standing on the floor right after a jump timestamp.
	p.LastJumpAt = f.world.Now
	f.advance(cooldown / 2)
	p.JumpRequested = true
	s.Update(0)
	if !p.Grounded {
		t.Fatal("jump accepted inside cooldown")
	}
	if p.JumpRequested {
		t.Fatal("rejected request not consumed")
	}

	f.advance(cooldown / 2)
	p.JumpRequested = true
	s.Update(0)
	if p.Grounded || p.VerticalSpeed != f.world.Tuning.Player.JumpForce {
		t.Fatal("jump refused at exactly the cooldown")
	}
}

func TestFallSpeedIsCapped(t *testing.T) {
	s, f := newPlayerSystem(t)
	tu := f.world.Tuning
	tu.Arena.RoomHeight = 1e6
	p := &f.world.Player
	p.Position = mgl64.Vec3{0, 1e5, 0}
	p.Grounded = false

	f.run(s, 300)

	if p.VerticalSpeed != -tu.Player.MaxFallSpeed {
		t.Fatalf("vertical speed = %v", p.VerticalSpeed)
	}
}

func TestZeroStepKeepsFreshJump(t *testing.T) {
	s, f := newPlayerSystem(t)
	p := &f.world.Player
	p.JumpRequested = true
	s.Update(0)
	s.Update(0)
	if p.Grounded || p.VerticalSpeed != f.world.Tuning.Player.JumpForce {
		t.Fatalf("jump lost across zero steps: %+v", p)
	}
}
