package data

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// PlayerTuning holds locomotion and survivability constants.
type PlayerTuning struct {
	Height               float64       `yaml:"height"`
	Radius               float64       `yaml:"radius"`
	MaxHealth            int           `yaml:"max_health"`
	StartPosition        [3]float64    `yaml:"start_position"`
	MovementSpeed        float64       `yaml:"movement_speed"`
	MovementAcceleration float64       `yaml:"movement_acceleration"` // lerp rate per second
	AirControl           float64       `yaml:"air_control"`           // target scale while airborne (<1)
	Gravity              float64       `yaml:"gravity"`
	JumpForce            float64       `yaml:"jump_force"`
	DoubleJumpForce      float64       `yaml:"double_jump_force"`
	MaxFallSpeed         float64       `yaml:"max_fall_speed"`
	JumpCooldown         time.Duration `yaml:"jump_cooldown"`
}

// GroundLevel is the eye height at which the player stands on the floor.
func (p PlayerTuning) GroundLevel() float64 { return p.Height / 2 }

// Start returns the spawn position as a vector.
func (p PlayerTuning) Start() mgl64.Vec3 { return mgl64.Vec3(p.StartPosition) }

// ArenaTuning describes the room.
type ArenaTuning struct {
	RoomSize    float64 `yaml:"room_size"`
	RoomHeight  float64 `yaml:"room_height"`
	WallMargin  float64 `yaml:"wall_margin"`  // player keeps this far from walls
	FloorMargin float64 `yaml:"floor_margin"` // and this far from floor/ceiling
	SpawnMargin float64 `yaml:"spawn_margin"` // enemies spawn this far inside the walls
}

// HalfExtent is the largest |x| or |z| the player may reach.
func (a ArenaTuning) HalfExtent() float64 { return a.RoomSize/2 - a.WallMargin }

type EnemyTuning struct {
	Speed         float64       `yaml:"speed"`
	Size          float64       `yaml:"size"`
	Health        int           `yaml:"health"`
	Damage        int           `yaml:"damage"` // contact damage
	SpawnInterval time.Duration `yaml:"spawn_interval"`
	HitFlash      time.Duration `yaml:"hit_flash"`
	MaxAlive      int           `yaml:"max_alive"`
}

type ProjectileTuning struct {
	Speed        float64       `yaml:"speed"`
	Radius       float64       `yaml:"radius"` // visual only
	MaxDistance  float64       `yaml:"max_distance"`
	Lifetime     time.Duration `yaml:"lifetime"`
	MuzzleOffset float64       `yaml:"muzzle_offset"`
	MaxAlive     int           `yaml:"max_alive"`
}

type ParticleTuning struct {
	Count    int           `yaml:"count"`
	Lifetime time.Duration `yaml:"lifetime"`
	Speed    float64       `yaml:"speed"`
	ScaleMin float64       `yaml:"scale_min"`
	ScaleMax float64       `yaml:"scale_max"`
	Colors   []string      `yaml:"colors"`
	MaxAlive int           `yaml:"max_alive"`

	Palette []colorful.Color `yaml:"-"`
}

type PickupTuning struct {
	Radius     float64 `yaml:"radius"`
	DropHeight float64 `yaml:"drop_height"`
	XPValue    int     `yaml:"xp_value"`
	MaxAlive   int     `yaml:"max_alive"`
}

type RegenTuning struct {
	Interval time.Duration `yaml:"interval"`
	Amount   int           `yaml:"amount"`
}

// Tuning is the full gameplay constant table.
type Tuning struct {
	Player     PlayerTuning     `yaml:"player"`
	Arena      ArenaTuning      `yaml:"arena"`
	Enemy      EnemyTuning      `yaml:"enemy"`
	Projectile ProjectileTuning `yaml:"projectile"`
	Particle   ParticleTuning   `yaml:"particle"`
	Pickup     PickupTuning     `yaml:"pickup"`
	Regen      RegenTuning      `yaml:"regen"`
}

// DefaultTuning returns the stock arena constants.
func DefaultTuning() *Tuning {
	t := &Tuning{
		Player: PlayerTuning{
			Height:               1.8,
			Radius:               0.5,
			MaxHealth:            100,
			StartPosition:        [3]float64{0, 2, 5},
			MovementSpeed:        4,
			MovementAcceleration: 15,
			AirControl:           0.5,
			Gravity:              10,
			JumpForce:            10,
			DoubleJumpForce:      6,
			MaxFallSpeed:         20,
			JumpCooldown:         50 * time.Millisecond,
		},
		Arena: ArenaTuning{
			RoomSize:    50,
			RoomHeight:  10,
			WallMargin:  0.5,
			FloorMargin: 0.1,
			SpawnMargin: 1,
		},
		Enemy: EnemyTuning{
			Speed:         2,
			Size:          0.5,
			Health:        3,
			Damage:        10,
			SpawnInterval: 5 * time.Second,
			HitFlash:      150 * time.Millisecond,
			MaxAlive:      64,
		},
		Projectile: ProjectileTuning{
			Speed:        30,
			Radius:       0.05,
			MaxDistance:  100,
			Lifetime:     10 * time.Second,
			MuzzleOffset: 0.5,
			MaxAlive:     256,
		},
		Particle: ParticleTuning{
			Count:    5,
			Lifetime: time.Second,
			Speed:    5,
			ScaleMin: 0.1,
			ScaleMax: 0.3,
			Colors:   []string{"#ff0000", "#ff00ff", "#00ffff", "#ffff00", "#ff8800"},
			MaxAlive: 1024,
		},
		Pickup: PickupTuning{
			Radius:     2,
			DropHeight: 1,
			XPValue:    10,
			MaxAlive:   128,
		},
		Regen: RegenTuning{
			Interval: time.Second,
			Amount:   1,
		},
	}
	if err := t.compile(); err != nil {
		panic(fmt.Sprintf("default tuning: %v", err))
	}
	return t
}

// LoadTuning reads a YAML tuning table over the defaults. Keys missing from
// the file keep their default value.
func LoadTuning(path string) (*Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuning(raw)
}

// ParseTuning decodes a YAML tuning document over the defaults.
func ParseTuning(raw []byte) (*Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(raw, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return t, nil
}

// compile validates the table and parses the particle palette.
func (t *Tuning) compile() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be > 0, got %v", name, v))
		}
	}
	positive("player.height", t.Player.Height)
	positive("player.radius", t.Player.Radius)
	positive("player.max_health", float64(t.Player.MaxHealth))
	positive("arena.room_size", t.Arena.RoomSize)
	positive("arena.room_height", t.Arena.RoomHeight)
	positive("enemy.size", t.Enemy.Size)
	positive("enemy.health", float64(t.Enemy.Health))
	positive("enemy.spawn_interval", t.Enemy.SpawnInterval.Seconds())
	positive("projectile.speed", t.Projectile.Speed)
	positive("projectile.lifetime", t.Projectile.Lifetime.Seconds())
	positive("particle.lifetime", t.Particle.Lifetime.Seconds())
	positive("regen.interval", t.Regen.Interval.Seconds())
	if t.Player.AirControl < 0 || t.Player.AirControl > 1 {
		errs = append(errs, fmt.Errorf("player.air_control must be in [0, 1], got %v", t.Player.AirControl))
	}
	if t.Arena.HalfExtent() <= 0 {
		errs = append(errs, errors.New("arena.wall_margin leaves no room to stand"))
	}
	if t.Particle.ScaleMax < t.Particle.ScaleMin {
		errs = append(errs, fmt.Errorf("particle.scale_max %v < scale_min %v", t.Particle.ScaleMax, t.Particle.ScaleMin))
	}
	if len(t.Particle.Colors) == 0 {
		errs = append(errs, errors.New("particle.colors is empty"))
	}

	palette := make([]colorful.Color, 0, len(t.Particle.Colors))
	for _, hex := range t.Particle.Colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("particle.colors %q: %w", hex, err))
			continue
		}
		palette = append(palette, c)
	}
	t.Particle.Palette = palette

	if len(errs) > 0 {
		return fmt.Errorf("invalid tuning: %w", errors.Join(errs...))
	}
	return nil
}
