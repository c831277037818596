package system

import (
	"math/rand"
	"testing"
	"time"

	"github.com/polybius/arena/internal/core/event"
	"github.com/polybius/arena/internal/data"
	"github.com/polybius/arena/internal/scripting"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	world     *world.State
	bus       *event.Bus
	lua       *scripting.Engine
	log       *zap.Logger
	rng       *rand.Rand
	particles *ParticleSystem
	combat    *Combat
}

// newFixture wires the combat coordinator over a fresh world whose player
// stands on the floor at the origin.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	tu := data.DefaultTuning()
	tu.Player.StartPosition = [3]float64{0, tu.Player.GroundLevel(), 0}

	log := zaptest.NewLogger(t)
	eng, err := scripting.NewEngine("", log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(eng.Close)

	f := &fixture{
		world: world.NewState(tu),
		bus:   event.NewBus(),
		lua:   eng,
		log:   log,
		rng:   rand.New(rand.NewSource(7)),
	}
	f.particles = NewParticleSystem(f.world, f.rng, log)
	f.combat = NewCombat(f.world, f.particles, eng, f.bus, log)
	return f
}

// advance moves simulation time forward by dt, as the session would.
func (f *fixture) advance(dt time.Duration) {
	f.world.Now += dt
	f.world.Tick++
}

// record collects every event of type T delivered by flush.
func record[T any](f *fixture) *[]T {
	got := new([]T)
	event.Subscribe(f.bus, func(e T) { *got = append(*got, e) })
	return got
}

// flush delivers everything emitted so far.
func (f *fixture) flush() {
	f.bus.SwapBuffers()
	f.bus.DispatchAll()
}
