package world

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/data"
)

func TestNewStatePlayer(t *testing.T) {
	tu := data.DefaultTuning()
	s := NewState(tu)
	p := s.Player
	if p.Position != (mgl64.Vec3{0, 2, 5}) {
		t.Fatalf("start = %v", p.Position)
	}
	// Spawned above the floor: falls first.
	if p.Grounded || !p.DoubleJump {
		t.Fatalf("grounded=%v doubleJump=%v", p.Grounded, p.DoubleJump)
	}
	if p.Health != 100 || p.MaxHealth != 100 || p.Level != 1 || p.XP != 0 {
		t.Fatalf("player = %+v", p)
	}
	if p.LastJumpAt != -tu.Player.JumpCooldown {
		t.Fatal("first jump would be gated by cooldown")
	}
}

func TestResetEmptiesAndAppliesTuning(t *testing.T) {
	s := NewState(data.DefaultTuning())
	s.Enemies.Spawn(&component.Enemy{Health: 3})
	s.Particles.Spawn(&component.Particle{})
	s.Player.Health = 7
	s.Now = time.Minute
	s.Tick = 99

	next := data.DefaultTuning()
	next.Enemy.MaxAlive = 1
	s.Reset(next)

	if s.Enemies.Len() != 0 || s.Particles.Len() != 0 {
		t.Fatal("collections survived reset")
	}
	if s.Now != 0 || s.Tick != 0 || s.Player.Health != 100 {
		t.Fatal("time or player not restored")
	}
	if s.Tuning != next {
		t.Fatal("tuning not applied")
	}
	if id, _ := s.Enemies.Spawn(&component.Enemy{}); id != 1 {
		t.Fatalf("ids not restarted: %d", id)
	}
	if _, ok := s.Enemies.Spawn(&component.Enemy{}); ok {
		t.Fatal("capacity from new tuning not applied")
	}
}

func TestCaptureFlashAndAge(t *testing.T) {
	tu := data.DefaultTuning()
	s := NewState(tu)
	s.Now = time.Second

	hit, _ := s.Enemies.Spawn(&component.Enemy{Health: 2, Hit: true, LastHitAt: s.Now - 50*time.Millisecond})
	stale, _ := s.Enemies.Spawn(&component.Enemy{Health: 2, Hit: true, LastHitAt: s.Now - time.Second})
	s.Particles.Spawn(&component.Particle{Lifetime: time.Second, CreatedAt: s.Now - 250*time.Millisecond})

	snap := Capture(s, HUD{Health: 100, State: Paused})

	if v, _ := snap.Enemy(hit); !v.Flashing {
		t.Error("recently hit enemy not flashing")
	}
	if v, _ := snap.Enemy(stale); v.Flashing {
		t.Error("stale hit still flashing")
	}
	if _, ok := snap.Enemy(999); ok {
		t.Error("unknown enemy found")
	}
	if got := snap.Particles[0].Age; got != 0.25 {
		t.Errorf("particle age = %v", got)
	}
	if snap.HUD.State != Paused || snap.Time != time.Second {
		t.Errorf("snapshot header = %+v", snap)
	}

	// The snapshot is a copy.
	e, _ := s.Enemies.Get(hit)
	e.Health = 1
	if v, _ := snap.Enemy(hit); v.Health != 2 {
		t.Error("snapshot aliases live state")
	}
}

func TestRunStateString(t *testing.T) {
	if Running.String() != "running" || Over.String() != "over" || RunState(9).String() != "unknown" {
		t.Fatal("run state names")
	}
}

func TestCaptureFlashAtTimeZero(t *testing.T) {
	s := NewState(data.DefaultTuning())

	hit, _ := s.Enemies.Spawn(&component.Enemy{Health: 2, Hit: true})
	fresh, _ := s.Enemies.Spawn(&component.Enemy{Health: 3})

	snap := Capture(s, HUD{})
	if v, _ := snap.Enemy(hit); !v.Flashing {
		t.Error("enemy hit at time zero not flashing")
	}
	if v, _ := snap.Enemy(fresh); v.Flashing {
		t.Error("enemy never hit is flashing")
	}
}
