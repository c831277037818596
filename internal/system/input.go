package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/input"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// InputSystem applies the commands handed over by the session for this tick.
// Phase 0 (Input). It only writes intent: target velocity, view direction
// and the jump latch. Fire is the exception and spawns a projectile here.
type InputSystem struct {
	world       *world.State
	projectiles *ProjectileSystem
	pending     []input.Command
	log         *zap.Logger
}

func NewInputSystem(ws *world.State, projectiles *ProjectileSystem, log *zap.Logger) *InputSystem {
	return &InputSystem{world: ws, projectiles: projectiles, log: log}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Enqueue hands commands to the next Update.
func (s *InputSystem) Enqueue(cmds ...input.Command) {
	s.pending = append(s.pending, cmds...)
}

func (s *InputSystem) Update(_ time.Duration) {
	p := &s.world.Player
	speed := s.world.Tuning.Player.MovementSpeed

	for _, cmd := range s.pending {
		switch cmd.Kind {
		case input.MoveIntent:
			v := mgl64.Clamp(cmd.Value, -1, 1) * speed
			switch cmd.Axis {
			case input.AxisForward:
				p.TargetVelocity[2] = v
			case input.AxisStrafe:
				p.TargetVelocity[0] = v
			}
		case input.Look:
			if dir, ok := mathx.Normalize(cmd.Direction); ok {
				p.View = dir
			}
		case input.Jump:
			p.JumpRequested = true
		case input.Fire:
			s.projectiles.Fire()
		default:
			s.log.Debug("input command ignored", zap.Stringer("kind", cmd.Kind))
		}
	}
	s.pending = s.pending[:0]
}

// Clear drops any commands not yet applied.
func (s *InputSystem) Clear() { s.pending = s.pending[:0] }
