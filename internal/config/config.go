package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/polybius/arena/internal/clock"
)

type Config struct {
	Session  SessionConfig  `toml:"session"`
	Paths    PathsConfig    `toml:"paths"`
	Frontend FrontendConfig `toml:"frontend"`
	Logging  LoggingConfig  `toml:"logging"`
}

type SessionConfig struct {
	TickRate         time.Duration `toml:"tick_rate"`
	MaxStep          time.Duration `toml:"max_step"` // upper bound on one tick's dt
	Seed             int64         `toml:"seed"`     // 0 = seed from wall clock
	MaxInputsPerTick int           `toml:"max_inputs_per_tick"`
	InputQueueSize   int           `toml:"input_queue_size"`
	CheckInvariants  bool          `toml:"check_invariants"`
}

type PathsConfig struct {
	Tuning  string `toml:"tuning"`  // YAML tuning table; "" = built-in defaults
	Scripts string `toml:"scripts"` // Lua override directory
	Watch   bool   `toml:"watch"`   // hot reload tuning and scripts
}

type FrontendConfig struct {
	Headless   bool          `toml:"headless"`
	Sound      bool          `toml:"sound"`
	RenderRate time.Duration `toml:"render_rate"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // terminal mode logs here instead of stderr
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a TOML document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Session: SessionConfig{
			TickRate:         16 * time.Millisecond,
			MaxStep:          100 * time.Millisecond,
			MaxInputsPerTick: 64,
			InputQueueSize:   256,
			CheckInvariants:  true,
		},
		Paths: PathsConfig{
			Tuning:  "data/yaml/tuning.yaml",
			Scripts: "scripts",
			Watch:   true,
		},
		Frontend: FrontendConfig{
			Sound:      true,
			RenderRate: 33 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "arena.log",
		},
	}
}

func (c *Config) validate() error {
	if c.Session.TickRate <= 0 {
		return fmt.Errorf("session.tick_rate must be > 0, got %s", c.Session.TickRate)
	}
	if c.Session.MaxStep <= 0 || c.Session.MaxStep > clock.MaxStep {
		return fmt.Errorf("session.max_step must be in (0, %s], got %s", clock.MaxStep, c.Session.MaxStep)
	}
	if c.Frontend.RenderRate <= 0 {
		return fmt.Errorf("frontend.render_rate must be > 0, got %s", c.Frontend.RenderRate)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
