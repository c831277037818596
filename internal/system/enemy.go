package system

import (
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/scripting"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// EnemySystem spawns enemies on a fixed interval at random wall positions,
// moves each straight toward the player and resolves contact.
// Phase 2 (Enemy).
type EnemySystem struct {
	world  *world.State
	combat *Combat
	lua    *scripting.Engine
	rng    *rand.Rand
	bus    *event.Bus
	log    *zap.Logger

	sinceSpawn time.Duration
}

func NewEnemySystem(ws *world.State, combat *Combat, lua *scripting.Engine, rng *rand.Rand, bus *event.Bus, log *zap.Logger) *EnemySystem {
	return &EnemySystem{world: ws, combat: combat, lua: lua, rng: rng, bus: bus, log: log}
}

func (s *EnemySystem) Phase() coresys.Phase { return coresys.PhaseEnemy }

func (s *EnemySystem) Update(dt time.Duration) {
	t := s.world.Tuning

	s.sinceSpawn += dt
	for s.sinceSpawn >= t.Enemy.SpawnInterval {
		s.sinceSpawn -= t.Enemy.SpawnInterval
		s.Spawn()
	}

	player := s.world.Player.Position
	step := t.Enemy.Speed * dt.Seconds()
	reach := t.Player.Radius + t.Enemy.Size/2

	s.world.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) {
		if dir, ok := mathx.Normalize(player.Sub(e.Position)); ok {
			e.Position = e.Position.Add(dir.Mul(step))
		}
		if mathx.Distance(e.Position, player) >= reach {
			return
		}
		p := &s.world.Player
		s.combat.ApplyDamage(s.lua.ContactDamage(scripting.ContactContext{
			Base:   t.Enemy.Damage,
			Level:  p.Level,
			Health: p.Health,
		}))
		s.combat.KillEnemy(id, event.CauseContact)
	})
	s.world.Enemies.Flush()
}

// Spawn places one enemy at floor level against a random wall, at a
// uniformly random offset along it.
func (s *EnemySystem) Spawn() (ecs.EntityID, bool) {
	t := s.world.Tuning
	edge := t.Arena.RoomSize/2 - t.Arena.SpawnMargin
	along := (s.rng.Float64()*2 - 1) * edge
	y := t.Player.GroundLevel()

	var pos mgl64.Vec3
	switch s.rng.Intn(4) {
	case 0: // north
		pos = mgl64.Vec3{along, y, -edge}
	case 1: // east
		pos = mgl64.Vec3{edge, y, along}
	case 2: // south
		pos = mgl64.Vec3{along, y, edge}
	default: // west
		pos = mgl64.Vec3{-edge, y, along}
	}
	return s.SpawnAt(pos)
}

// SpawnAt places one enemy at pos. At capacity the spawn is skipped.
func (s *EnemySystem) SpawnAt(pos mgl64.Vec3) (ecs.EntityID, bool) {
	id, ok := s.world.Enemies.Spawn(&component.Enemy{
		Position:  pos,
		Health:    s.world.Tuning.Enemy.Health,
		CreatedAt: s.world.Now,
	})
	if !ok {
		s.log.Debug("enemy spawn skipped at capacity",
			zap.Int("alive", s.world.Enemies.Len()))
		return 0, false
	}
	event.Emit(s.bus, event.EnemySpawned{EnemyID: id, Position: pos})
	return id, true
}

// Reset clears the spawn timer.
func (s *EnemySystem) Reset() { s.sinceSpawn = 0 }
