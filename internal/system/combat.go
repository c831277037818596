package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	"github.com/polybius/arena/internal/core/event"
	"github.com/polybius/arena/internal/scripting"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// Combat is the single writer of player health, XP and level, and runs the
// enemy death sequence. It is not a phase of its own: the enemy, projectile,
// pickup and regen phases call into it.
type Combat struct {
	world     *world.State
	particles *ParticleSystem
	lua       *scripting.Engine
	bus       *event.Bus
	log       *zap.Logger
}

func NewCombat(ws *world.State, particles *ParticleSystem, lua *scripting.Engine, bus *event.Bus, log *zap.Logger) *Combat {
	return &Combat{world: ws, particles: particles, lua: lua, bus: bus, log: log}
}

// Dead reports whether the player has run out of health.
func (c *Combat) Dead() bool { return c.world.Player.Health <= 0 }

// ApplyDamage subtracts amount from player health, floored at 0, and
// returns the damage actually taken.
func (c *Combat) ApplyDamage(amount int) int {
	p := &c.world.Player
	if amount <= 0 || p.Health <= 0 {
		return 0
	}
	before := p.Health
	p.Health = max(0, p.Health-amount)
	taken := before - p.Health
	event.Emit(c.bus, event.PlayerDamaged{Amount: taken, Health: p.Health})

	if p.Health == 0 {
		c.log.Info("player died",
			zap.Int("level", p.Level),
			zap.Duration("elapsed", c.world.Now))
		event.Emit(c.bus, event.RunOver{Level: p.Level, Elapsed: c.world.Now})
	}
	return taken
}

// Heal adds amount to player health, capped at MaxHealth, and returns the
// health actually restored. A dead player is not healed.
func (c *Combat) Heal(amount int) int {
	p := &c.world.Player
	if amount <= 0 || p.Health <= 0 || p.Health >= p.MaxHealth {
		return 0
	}
	before := p.Health
	p.Health = min(p.MaxHealth, p.Health+amount)
	restored := p.Health - before
	event.Emit(c.bus, event.PlayerHealed{Amount: restored, Health: p.Health})
	return restored
}

// XPToNextLevel is the XP threshold of the current level.
func (c *Combat) XPToNextLevel() int {
	return max(1, c.lua.XPForLevel(c.world.Player.Level))
}

// GrantXP adds amount and levels up at most once: on crossing the threshold
// the threshold is subtracted and the level advances by one. Surplus beyond
// a second threshold stays in XP until the next grant. A dead player gains
// nothing.
func (c *Combat) GrantXP(amount int) bool {
	if amount <= 0 || c.Dead() {
		return false
	}
	p := &c.world.Player
	p.XP += amount
	event.Emit(c.bus, event.XPGained{Amount: amount, XP: p.XP})

	need := c.XPToNextLevel()
	if p.XP < need {
		return false
	}
	p.XP -= need
	p.Level++
	c.log.Info("player leveled up",
		zap.Int("level", p.Level),
		zap.Int("xp", p.XP))
	event.Emit(c.bus, event.PlayerLeveledUp{Level: p.Level})
	return true
}

// KillEnemy runs the death sequence for enemy id: removal, explosion burst
// and XP drop. It returns false when the enemy is unknown or already dying,
// so each enemy dies exactly once however many paths detect the death.
func (c *Combat) KillEnemy(id ecs.EntityID, cause event.DeathCause) bool {
	e, ok := c.world.Enemies.Get(id)
	if !ok || !c.world.Enemies.Remove(id) {
		return false
	}
	pos := e.Position

	c.particles.Burst(pos)

	t := c.world.Tuning.Pickup
	value := c.lua.XPDrop(scripting.DropContext{
		Base:  t.XPValue,
		Level: c.world.Player.Level,
		Cause: cause.String(),
	})
	c.SpawnPickup(component.PickupXP, pos.Add(mgl64.Vec3{0, t.DropHeight, 0}), value)

	event.Emit(c.bus, event.EnemyKilled{EnemyID: id, Position: pos, Cause: cause})
	c.log.Debug("enemy killed",
		zap.Uint64("enemy", uint64(id)),
		zap.Stringer("cause", cause))
	return true
}

// SpawnPickup drops a pickup at pos. At capacity the pickup is discarded.
func (c *Combat) SpawnPickup(kind component.PickupKind, pos mgl64.Vec3, value int) (ecs.EntityID, bool) {
	id, ok := c.world.Pickups.Spawn(&component.Pickup{
		Kind:      kind,
		Position:  pos,
		Value:     value,
		CreatedAt: c.world.Now,
	})
	if !ok {
		c.log.Debug("pickup dropped at capacity", zap.Stringer("kind", kind))
	}
	return id, ok
}
