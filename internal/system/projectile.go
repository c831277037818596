package system

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	"github.com/polybius/arena/internal/core/event"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// ProjectileSystem flies projectiles, resolves hits against enemies and
// expires projectiles by age or range. Phase 3 (Projectile).
// A hit is the closest approach along this tick's path, not the distance
// at the end of the move.
//
// Resolution is two-pass. Pass one moves every projectile in creation order
// and records at most one hit per projectile; an enemy whose pending hits
// already cover its health is not a valid target for later projectiles.
// Pass two applies the damage and kills. Removals from both collections are
// flushed only after both passes.
type ProjectileSystem struct {
	world  *world.State
	combat *Combat
	bus    *event.Bus
	log    *zap.Logger

	hits    []projectileHit
	pending map[ecs.EntityID]int // enemy → health left after recorded hits
}

type projectileHit struct {
	projectile ecs.EntityID
	enemy      ecs.EntityID
}

func NewProjectileSystem(ws *world.State, combat *Combat, bus *event.Bus, log *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{
		world:   ws,
		combat:  combat,
		bus:     bus,
		log:     log,
		pending: make(map[ecs.EntityID]int),
	}
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseProjectile }

// Fire spawns a projectile just ahead of the player along the view
// direction. At capacity, or with no usable view direction, nothing fires.
func (s *ProjectileSystem) Fire() (ecs.EntityID, bool) {
	p := &s.world.Player
	dir, ok := mathx.Normalize(p.View)
	if !ok {
		return 0, false
	}
	t := s.world.Tuning.Projectile
	pos := p.Position.Add(dir.Mul(t.MuzzleOffset))
	id, ok := s.world.Projectiles.Spawn(&component.Projectile{
		Position:  pos,
		Direction: dir,
		CreatedAt: s.world.Now,
	})
	if !ok {
		s.log.Debug("projectile dropped at capacity",
			zap.Int("alive", s.world.Projectiles.Len()))
		return 0, false
	}
	event.Emit(s.bus, event.ProjectileFired{ProjectileID: id, Position: pos, Direction: dir})
	return id, true
}

func (s *ProjectileSystem) Update(dt time.Duration) {
	t := s.world.Tuning.Projectile
	step := t.Speed * dt.Seconds()
	now := s.world.Now
	player := s.world.Player.Position

	s.hits = s.hits[:0]
	clear(s.pending)

	// Pass 1: move, detect, expire.
	s.world.Projectiles.Each(func(id ecs.EntityID, p *component.Projectile) {
		from := p.Position
		p.Position = from.Add(p.Direction.Mul(step))

		if enemy, ok := s.firstHit(from, p); ok {
			s.hits = append(s.hits, projectileHit{projectile: id, enemy: enemy})
			s.pending[enemy]--
			s.world.Projectiles.Remove(id)
			return
		}
		if now-p.CreatedAt > t.Lifetime || mathx.Distance(p.Position, player) > t.MaxDistance {
			s.world.Projectiles.Remove(id)
		}
	})

	// Pass 2: damage and death.
	for _, h := range s.hits {
		e, ok := s.world.Enemies.Get(h.enemy)
		if !ok {
			continue
		}
		e.Health--
		if e.Health <= 0 {
			s.combat.KillEnemy(h.enemy, event.CauseProjectile)
			continue
		}
		e.Hit = true
		e.LastHitAt = now
		event.Emit(s.bus, event.EnemyHit{EnemyID: h.enemy, Health: e.Health})
	}

	s.world.Enemies.Flush()
	s.world.Projectiles.Flush()
}

// firstHit returns the first enemy, in spawn order, that the projectile's
// path this tick passes within enemy size of and that is not already
// doomed by earlier hits.
func (s *ProjectileSystem) firstHit(from mgl64.Vec3, p *component.Projectile) (ecs.EntityID, bool) {
	size := s.world.Tuning.Enemy.Size
	var target ecs.EntityID
	s.world.Enemies.Each(func(id ecs.EntityID, e *component.Enemy) {
		if !target.IsZero() {
			return
		}
		left, seen := s.pending[id]
		if !seen {
			left = e.Health
			s.pending[id] = left
		}
		if left <= 0 {
			return
		}
		if mathx.SegmentDistance(from, p.Position, e.Position) < size {
			target = id
		}
	})
	return target, !target.IsZero()
}
