package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// PlayerSystem is the player controller: camera-relative movement with
// smoothed velocity, gravity, jump/double-jump and room bounds.
// Phase 1 (Player). Reads the intent fields latched by the input phase.
type PlayerSystem struct {
	world *world.State
	bus   *event.Bus
	log   *zap.Logger
}

func NewPlayerSystem(ws *world.State, bus *event.Bus, log *zap.Logger) *PlayerSystem {
	return &PlayerSystem{world: ws, bus: bus, log: log}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhasePlayer }

func (s *PlayerSystem) Update(dt time.Duration) {
	p := &s.world.Player
	if p.JumpRequested {
		p.JumpRequested = false
		s.jump(p)
	}
	// A zero step would snap a fresh jump back onto the floor.
	if dt <= 0 {
		return
	}

	t := s.world.Tuning.Player
	a := s.world.Tuning.Arena
	secs := dt.Seconds()

	if !p.Grounded {
		p.VerticalSpeed = max(p.VerticalSpeed-t.Gravity*secs, -t.MaxFallSpeed)
	}

	target := p.TargetVelocity
	if !p.Grounded {
		target = target.Mul(t.AirControl)
	}
	p.Velocity = mathx.Lerp(p.Velocity, target, t.MovementAcceleration*secs)

	// Looking straight up or down leaves no horizontal heading; the
	// player then only moves vertically.
	forward, _ := mathx.Flatten(p.View)
	right := forward.Cross(mathx.Up)

	move := forward.Mul(p.Velocity.Z() * secs).
		Add(right.Mul(p.Velocity.X() * secs)).
		Add(mathx.Up.Mul(p.VerticalSpeed * secs))
	pos := mathx.ClampHorizontal(p.Position.Add(move), a.HalfExtent())
	pos[1] = mgl64.Clamp(pos.Y(), a.FloorMargin, a.RoomHeight-a.FloorMargin)

	ground := t.GroundLevel()
	if pos.Y() <= ground {
		pos[1] = ground
		p.VerticalSpeed = 0
		p.Grounded = true
		p.DoubleJump = true
	} else {
		p.Grounded = false
	}
	p.Position = pos
}

// jump applies a ground jump (cooldown-gated) or, while airborne, the one
// double jump. Either resets the cooldown timestamp.
func (s *PlayerSystem) jump(p *component.Player) {
	t := s.world.Tuning.Player
	now := s.world.Now
	switch {
	case p.Grounded:
		if now-p.LastJumpAt < t.JumpCooldown {
			return
		}
		p.VerticalSpeed = t.JumpForce
		p.Grounded = false
		p.DoubleJump = true
		p.LastJumpAt = now
		event.Emit(s.bus, event.PlayerJumped{})
	case p.DoubleJump:
		p.VerticalSpeed = t.DoubleJumpForce
		p.DoubleJump = false
		p.LastJumpAt = now
		event.Emit(s.bus, event.PlayerJumped{Double: true})
	}
}
