// Package game assembles the simulation: world state, phase systems, clock
// stepper and input queue, driven one tick at a time by Session.Tick.
package game

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/polybius/arena/internal/clock"
	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/data"
	"github.com/polybius/arena/internal/input"
	"github.com/polybius/arena/internal/scripting"
	"github.com/polybius/arena/internal/system"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// Deps carries everything a session needs from the process.
type Deps struct {
	Tuning  *data.Tuning
	Scripts *scripting.Engine
	Log     *zap.Logger

	Seed             int64 // 0 = seed from wall clock
	MaxStep          time.Duration
	MaxInputsPerTick int
	InputQueueSize   int
	CheckInvariants  bool
}

// Session runs one arena: a single goroutine calls Tick; any goroutine may
// Push commands or read the latest Snapshot.
type Session struct {
	world   *world.State
	runner  *coresys.Runner
	stepper *clock.Stepper
	bus     *event.Bus
	queue   *input.Queue
	log     *zap.Logger

	combat      *system.Combat
	input       *system.InputSystem
	enemies     *system.EnemySystem
	projectiles *system.ProjectileSystem
	regen       *system.RegenSystem

	state     world.RunState
	maxInputs int
	cmdBuf    []input.Command
	next      *data.Tuning // applied on the next Reset

	snapshot atomic.Pointer[world.Snapshot]
	runState atomic.Int32
}

func New(d Deps) *Session {
	if d.Tuning == nil {
		d.Tuning = data.DefaultTuning()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Scripts == nil {
		eng, err := scripting.NewEngine("", d.Log)
		if err != nil {
			panic(fmt.Sprintf("built-in scripts: %v", err))
		}
		d.Scripts = eng
	}
	seed := d.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		world:     world.NewState(d.Tuning),
		runner:    coresys.NewRunner(),
		stepper:   clock.NewStepper(d.MaxStep),
		bus:       event.NewBus(),
		queue:     input.NewQueue(d.InputQueueSize),
		log:       d.Log,
		maxInputs: d.MaxInputsPerTick,
	}

	// Create systems.
	particles := system.NewParticleSystem(s.world, rng, d.Log)
	s.combat = system.NewCombat(s.world, particles, d.Scripts, s.bus, d.Log)
	s.projectiles = system.NewProjectileSystem(s.world, s.combat, s.bus, d.Log)
	s.input = system.NewInputSystem(s.world, s.projectiles, d.Log)
	s.enemies = system.NewEnemySystem(s.world, s.combat, d.Scripts, rng, s.bus, d.Log)
	s.regen = system.NewRegenSystem(s.world, s.combat, d.Scripts)

	// Register systems.
	s.runner.Register(system.NewEventDispatchSystem(s.bus))
	s.runner.Register(s.input)
	s.runner.Register(system.NewPlayerSystem(s.world, s.bus, d.Log))
	s.runner.Register(s.enemies)
	s.runner.Register(s.projectiles)
	s.runner.Register(particles)
	s.runner.Register(system.NewPickupSystem(s.world, s.combat, s.bus))
	s.runner.Register(s.regen)
	s.runner.Register(system.NewOutputSystem(s.world, s.combat, s.State, s.snapshot.Store))

	if d.CheckInvariants {
		s.runner.Verify = s.verify
	}

	s.setState(world.Running)
	s.publish()
	d.Log.Info("session ready",
		zap.Int64("seed", seed),
		zap.Int("systems", s.runner.Len()),
		zap.Duration("max_step", s.stepper.Max()),
		zap.Bool("check_invariants", d.CheckInvariants))
	return s
}

// Push enqueues a command from any goroutine. It reports false when the
// queue is full and the command was dropped.
func (s *Session) Push(cmd input.Command) bool { return s.queue.Push(cmd) }

// Bus exposes the event bus for subscriptions. Handlers run on the game
// goroutine at the start of the tick after the emitting one.
func (s *Session) Bus() *event.Bus { return s.bus }

// Snapshot returns the most recently published snapshot. Safe from any
// goroutine.
func (s *Session) Snapshot() *world.Snapshot { return s.snapshot.Load() }

// DroppedInputs counts commands lost to a full input queue. Safe from any
// goroutine.
func (s *Session) DroppedInputs() uint64 { return s.queue.Dropped() }

// State returns the run state. Safe from any goroutine.
func (s *Session) State() world.RunState { return world.RunState(s.runState.Load()) }

// World exposes the live state to the game goroutine.
func (s *Session) World() *world.State { return s.world }

// SetTuning stages a tuning table for the next Reset.
func (s *Session) SetTuning(t *data.Tuning) { s.next = t }

// Tick advances the session to wall time now and returns the published
// snapshot. Game goroutine only.
func (s *Session) Tick(now time.Time) *world.Snapshot {
	s.cmdBuf = s.queue.Drain(s.cmdBuf[:0], s.maxInputs)
	for _, cmd := range s.cmdBuf {
		s.route(cmd, now)
	}

	dt := s.stepper.Step(now)
	if s.state != world.Running {
		return s.publish()
	}

	s.stepper.Advance(dt)
	s.world.Now = s.stepper.Elapsed()
	s.world.Tick = s.stepper.Ticks()
	s.runner.Tick(dt)

	if s.combat.Dead() {
		s.setState(world.Over)
		// Deliver this tick's events now; no further tick will dispatch them.
		// Input was drained by this tick's input phase, so only dispatch runs.
		s.runner.TickPhase(coresys.PhaseInput, 0)
		s.log.Info("run over",
			zap.Int("level", s.world.Player.Level),
			zap.Duration("elapsed", s.world.Now),
			zap.Uint64("ticks", s.world.Tick))
		return s.publish()
	}
	return s.snapshot.Load()
}

// publish runs the output phase alone, for ticks where the simulation
// phases do not run.
func (s *Session) publish() *world.Snapshot {
	s.runner.TickPhase(coresys.PhaseOutput, 0)
	return s.snapshot.Load()
}

// route applies session-level commands and forwards the rest to the input
// phase. Only movement intent and look survive while not running, so a
// held key is still honored on resume.
func (s *Session) route(cmd input.Command, now time.Time) {
	switch cmd.Kind {
	case input.PauseToggle:
		s.togglePause(now)
	case input.Restart:
		s.Reset()
	case input.MoveIntent, input.Look:
		s.input.Enqueue(cmd)
	default:
		if s.state == world.Running {
			s.input.Enqueue(cmd)
		}
	}
}

func (s *Session) togglePause(now time.Time) {
	switch s.state {
	case world.Running:
		s.setState(world.Paused)
		s.log.Info("paused", zap.Duration("elapsed", s.world.Now))
	case world.Paused:
		s.stepper.Rebase(now)
		s.setState(world.Running)
		s.log.Info("resumed", zap.Duration("elapsed", s.world.Now))
	}
}

// Reset starts a new run: staged tuning takes effect, every collection is
// emptied and the player restored. Game goroutine only.
func (s *Session) Reset() {
	if s.next != nil {
		s.log.Info("tuning applied")
	}
	s.world.Reset(s.next)
	s.next = nil
	s.stepper.Reset()
	s.bus.Reset()
	s.input.Clear()
	s.enemies.Reset()
	s.regen.Reset()
	s.setState(world.Running)
	s.publish()
	s.log.Info("session reset")
}

func (s *Session) setState(st world.RunState) {
	s.state = st
	s.runState.Store(int32(st))
}

// verify fails when a phase returns with removals still queued.
func (s *Session) verify(sys coresys.System) error {
	if names := s.world.Registry.Unflushed(); len(names) > 0 {
		return fmt.Errorf("unflushed removals in %v", names)
	}
	p := &s.world.Player
	if p.Health < 0 || p.Health > p.MaxHealth {
		return fmt.Errorf("player health %d outside [0, %d]", p.Health, p.MaxHealth)
	}
	return nil
}
