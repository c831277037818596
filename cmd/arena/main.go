package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/polybius/arena/internal/config"
	"github.com/polybius/arena/internal/data"
	"github.com/polybius/arena/internal/game"
	"github.com/polybius/arena/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// frontend drives one presentation of the session. Start runs its own
// goroutines; AfterTick runs on the game goroutine; Done closes when the
// player quits.
type frontend interface {
	Start() error
	AfterTick()
	Done() <-chan struct{}
	Close()
}

func run() error {
	cfgPath := "config/arena.toml"
	if p := os.Getenv("ARENA_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to arena.toml")
	headless := flag.Bool("headless", false, "run without the terminal view")
	seed := flag.Int64("seed", 0, "random seed (0 = config value)")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Defaults()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *headless {
		cfg.Frontend.Headless = true
	}
	if *seed != 0 {
		cfg.Session.Seed = *seed
	}

	// 2. Init logger. The terminal view owns stdout, so it logs to a file.
	log, err := newLogger(cfg.Logging, !cfg.Frontend.Headless)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load gameplay tuning
	tuning, err := loadTuning(cfg.Paths.Tuning, log)
	if err != nil {
		return err
	}

	// 4. Load Lua scripts
	scripts, err := scripting.NewEngine(cfg.Paths.Scripts, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer scripts.Close()

	// 5. Create session
	sess := game.New(game.Deps{
		Tuning:           tuning,
		Scripts:          scripts,
		Log:              log,
		Seed:             cfg.Session.Seed,
		MaxStep:          cfg.Session.MaxStep,
		MaxInputsPerTick: cfg.Session.MaxInputsPerTick,
		InputQueueSize:   cfg.Session.InputQueueSize,
		CheckInvariants:  cfg.Session.CheckInvariants,
	})

	// 6. Hot reload
	var watchEvents <-chan string
	var watchErrors <-chan error
	if cfg.Paths.Watch {
		w, err := data.NewWatcher(watchDirs(cfg.Paths)...)
		if err != nil {
			log.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer w.Close()
			watchEvents, watchErrors = w.Events, w.Errors
		}
	}

	// 7. Frontend
	var fe frontend
	if cfg.Frontend.Headless {
		fe = newHeadless(sess, log)
	} else {
		fe = newTerminal(sess, cfg.Frontend, log)
	}
	if err := fe.Start(); err != nil {
		return fmt.Errorf("frontend: %w", err)
	}
	defer fe.Close()

	if cfg.Frontend.Sound {
		snd, err := newSound(log)
		if err != nil {
			log.Warn("sound disabled", zap.Error(err))
		} else {
			defer snd.Close()
			snd.Subscribe(sess.Bus())
		}
	}

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Session.TickRate)
	defer ticker.Stop()

	log.Info("arena started",
		zap.Duration("tick", cfg.Session.TickRate),
		zap.Bool("headless", cfg.Frontend.Headless))

	for {
		select {
		case now := <-ticker.C:
			sess.Tick(now)
			fe.AfterTick()
		case path := <-watchEvents:
			reload(path, cfg.Paths, sess, scripts, log)
		case err := <-watchErrors:
			log.Warn("watcher error", zap.Error(err))
		case <-fe.Done():
			log.Info("player quit")
			return nil
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// loadTuning reads the tuning table, falling back to the built-in
// constants when the file does not exist.
func loadTuning(path string, log *zap.Logger) (*data.Tuning, error) {
	if path == "" {
		return data.DefaultTuning(), nil
	}
	t, err := data.LoadTuning(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("tuning file not found, using defaults", zap.String("path", path))
		return data.DefaultTuning(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("tuning: %w", err)
	}
	log.Info("tuning loaded", zap.String("path", path))
	return t, nil
}

// watchDirs lists the existing directories holding the tuning table and
// the Lua override scripts.
func watchDirs(p config.PathsConfig) []string {
	var dirs []string
	if p.Tuning != "" {
		dirs = append(dirs, filepath.Dir(p.Tuning))
	}
	if p.Scripts != "" {
		for _, sub := range []string{"core", "combat"} {
			dirs = append(dirs, filepath.Join(p.Scripts, sub))
		}
	}
	existing := dirs[:0]
	for _, d := range dirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			existing = append(existing, d)
		}
	}
	return existing
}

// reload applies one changed file. Lua swaps immediately; tuning is staged
// for the next reset so a run never changes rules midway.
func reload(path string, p config.PathsConfig, sess *game.Session, scripts *scripting.Engine, log *zap.Logger) {
	switch {
	case data.IsScriptFile(path):
		if err := scripts.Reload(); err != nil {
			log.Error("lua reload failed", zap.String("file", path), zap.Error(err))
		}
	case data.IsTuningFile(path) && filepath.Clean(path) == filepath.Clean(p.Tuning):
		t, err := data.LoadTuning(path)
		if err != nil {
			log.Error("tuning reload failed", zap.Error(err))
			return
		}
		sess.SetTuning(t)
		log.Info("tuning staged for next run", zap.String("file", path))
	}
}

func newLogger(cfg config.LoggingConfig, toFile bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		if !toFile {
			zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if toFile {
		if cfg.File == "" {
			return zap.NewNop(), nil
		}
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
