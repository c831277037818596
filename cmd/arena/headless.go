package main

import (
	"time"

	"github.com/polybius/arena/internal/core/event"
	"github.com/polybius/arena/internal/game"
	"github.com/polybius/arena/internal/input"
	"github.com/polybius/arena/internal/mathx"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

const (
	autoFireEvery = 300 * time.Millisecond
	statusEvery   = 5 * time.Second
)

// headless plays the session without a screen: it aims at the nearest
// enemy, fires on a fixed cadence, restarts after a lost run and logs the
// events a player would see.
type headless struct {
	sess *game.Session
	log  *zap.Logger
	done chan struct{}

	lastShot   time.Duration
	lastStatus time.Duration
}

func newHeadless(sess *game.Session, log *zap.Logger) *headless {
	return &headless{sess: sess, log: log, done: make(chan struct{})}
}

func (h *headless) Start() error {
	bus := h.sess.Bus()
	event.Subscribe(bus, func(e event.EnemyKilled) {
		h.log.Info("enemy killed", zap.Uint64("enemy", uint64(e.EnemyID)), zap.Stringer("cause", e.Cause))
	})
	event.Subscribe(bus, func(e event.PlayerDamaged) {
		h.log.Info("player damaged", zap.Int("amount", e.Amount), zap.Int("health", e.Health))
	})
	event.Subscribe(bus, func(e event.PickupCollected) {
		h.log.Debug("pickup collected", zap.String("kind", e.Kind), zap.Int("value", e.Value))
	})
	return nil
}

// AfterTick steers the player from the latest snapshot. Commands land in
// the next tick.
func (h *headless) AfterTick() {
	snap := h.sess.Snapshot()
	if snap == nil {
		return
	}
	if snap.HUD.State == world.Over {
		h.lastShot, h.lastStatus = 0, 0
		h.sess.Push(input.Command{Kind: input.Restart})
		return
	}
	if snap.Time-h.lastStatus >= statusEvery {
		h.lastStatus = snap.Time
		h.log.Info("status",
			zap.Duration("time", snap.Time),
			zap.Int("health", snap.HUD.Health),
			zap.Int("level", snap.HUD.Level),
			zap.Int("xp", snap.HUD.XP),
			zap.Int("enemies", len(snap.Enemies)),
			zap.Uint64("dropped_inputs", h.sess.DroppedInputs()))
	}

	target, ok := nearestEnemy(snap)
	if !ok {
		return
	}
	if dir, ok := mathx.Normalize(target.Sub(snap.Player.Position)); ok {
		h.sess.Push(input.LookAt(dir))
	}
	if snap.Time-h.lastShot >= autoFireEvery {
		h.lastShot = snap.Time
		h.sess.Push(input.Command{Kind: input.Fire})
	}
}

func (h *headless) Done() <-chan struct{} { return h.done }

func (h *headless) Close() {}
