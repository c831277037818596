package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/polybius/arena/internal/component"
	"github.com/polybius/arena/internal/core/ecs"
	coresys "github.com/polybius/arena/internal/core/system"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

// ParticleSystem moves explosion fragments and expires them by age.
// Particles never affect gameplay.
type ParticleSystem struct {
	world *world.State
	rng   *rand.Rand
	log   *zap.Logger
}

func NewParticleSystem(ws *world.State, rng *rand.Rand, log *zap.Logger) *ParticleSystem {
	return &ParticleSystem{world: ws, rng: rng, log: log}
}

func (s *ParticleSystem) Phase() coresys.Phase { return coresys.PhaseParticle }

func (s *ParticleSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	now := s.world.Now
	s.world.Particles.Each(func(id ecs.EntityID, p *component.Particle) {
		if now-p.CreatedAt > p.Lifetime {
			s.world.Particles.Remove(id)
			return
		}
		p.Position = p.Position.Add(p.Velocity.Mul(secs))
	})
	s.world.Particles.Flush()
}

// Burst spawns one explosion at origin and returns how many particles were
// created. Each particle gets a random horizontal heading, an upward bias,
// a palette color and a scale within the tuned range.
func (s *ParticleSystem) Burst(origin mgl64.Vec3) int {
	t := s.world.Tuning.Particle
	spawned := 0
	for i := 0; i < t.Count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		lift := s.rng.Float64()*0.5 + 0.5
		vel := mgl64.Vec3{
			math.Cos(angle) * t.Speed,
			lift * t.Speed,
			math.Sin(angle) * t.Speed,
		}
		p := &component.Particle{
			Position:  origin,
			Velocity:  vel,
			Color:     t.Palette[s.rng.Intn(len(t.Palette))],
			Scale:     t.ScaleMin + s.rng.Float64()*(t.ScaleMax-t.ScaleMin),
			Lifetime:  t.Lifetime,
			CreatedAt: s.world.Now,
		}
		if _, ok := s.world.Particles.Spawn(p); !ok {
			s.log.Debug("particle burst truncated at capacity",
				zap.Int("spawned", spawned),
				zap.Int("want", t.Count))
			break
		}
		spawned++
	}
	return spawned
}
