package scripting

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed scripts
var builtin embed.FS

// script directories, loaded in this order
var scriptDirs = []string{"core", "combat"}

// Engine wraps a single gopher-lua VM for gameplay formulas.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
	dir string // optional override directory, "" = built-in scripts only
}

// NewEngine loads the built-in scripts, then any .lua files found under
// scriptsDir/core and scriptsDir/combat. Later definitions replace earlier
// ones, so an override directory only needs the functions it changes.
// A missing scriptsDir is not an error.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	e := &Engine{log: log, dir: scriptsDir}
	vm, err := e.load()
	if err != nil {
		return nil, err
	}
	e.vm = vm
	return e, nil
}

// Reload builds a fresh VM from the same sources and swaps it in. On error
// the current VM stays active.
func (e *Engine) Reload() error {
	vm, err := e.load()
	if err != nil {
		return err
	}
	old := e.vm
	e.vm = vm
	old.Close()
	e.log.Info("lua scripts reloaded", zap.String("dir", e.dir))
	return nil
}

func (e *Engine) load() (*lua.LState, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	scripts, err := fs.Sub(builtin, "scripts")
	if err != nil {
		vm.Close()
		return nil, err
	}
	if err := e.loadFS(vm, scripts, "builtin"); err != nil {
		vm.Close()
		return nil, err
	}

	if e.dir != "" {
		if _, err := os.Stat(e.dir); err == nil {
			if err := e.loadFS(vm, os.DirFS(e.dir), e.dir); err != nil {
				vm.Close()
				return nil, err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			vm.Close()
			return nil, fmt.Errorf("stat scripts dir: %w", err)
		}
	}
	return vm, nil
}

// loadFS runs every .lua file of each script directory in fsys.
func (e *Engine) loadFS(vm *lua.LState, fsys fs.FS, origin string) error {
	for _, sub := range scriptDirs {
		entries, err := fs.ReadDir(fsys, sub)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue // skip missing dirs
			}
			return fmt.Errorf("load %s scripts: %w", sub, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || path.Ext(entry.Name()) != ".lua" {
				continue
			}
			p := path.Join(sub, entry.Name())
			src, err := fs.ReadFile(fsys, p)
			if err != nil {
				return fmt.Errorf("read %s: %w", p, err)
			}
			if err := vm.DoString(string(src)); err != nil {
				return fmt.Errorf("load %s/%s: %w", origin, p, err)
			}
			e.log.Debug("loaded lua script", zap.String("origin", origin), zap.String("file", p))
		}
	}
	return nil
}

// --- Progression Bridge ---

// XPForLevel calls Lua xp_for_level(level). Falls back to level*100.
func (e *Engine) XPForLevel(level int) int {
	return e.callIntFunc("xp_for_level", level*100, level)
}

// RegenContext holds data for one passive regen event.
type RegenContext struct {
	Health    int
	MaxHealth int
	Level     int
	Base      int // configured amount
}

// RegenAmount calls Lua calc_regen_amount(ctx).
func (e *Engine) RegenAmount(ctx RegenContext) int {
	return e.callTableFunc("calc_regen_amount", ctx.Base, map[string]lua.LValue{
		"health":     lua.LNumber(ctx.Health),
		"max_health": lua.LNumber(ctx.MaxHealth),
		"level":      lua.LNumber(ctx.Level),
		"base":       lua.LNumber(ctx.Base),
	})
}

// --- Combat Bridge ---

// ContactContext holds data for an enemy touching the player.
type ContactContext struct {
	Base   int // configured contact damage
	Level  int
	Health int
}

// ContactDamage calls Lua calc_contact_damage(ctx).
func (e *Engine) ContactDamage(ctx ContactContext) int {
	return e.callTableFunc("calc_contact_damage", ctx.Base, map[string]lua.LValue{
		"base":   lua.LNumber(ctx.Base),
		"level":  lua.LNumber(ctx.Level),
		"health": lua.LNumber(ctx.Health),
	})
}

// DropContext holds data for the XP dropped by a dying enemy.
type DropContext struct {
	Base  int
	Level int
	Cause string
}

// XPDrop calls Lua calc_xp_drop(ctx).
func (e *Engine) XPDrop(ctx DropContext) int {
	return e.callTableFunc("calc_xp_drop", ctx.Base, map[string]lua.LValue{
		"base":  lua.LNumber(ctx.Base),
		"level": lua.LNumber(ctx.Level),
		"cause": lua.LString(ctx.Cause),
	})
}

// --- Lua helpers ---

// callIntFunc calls a Lua function with int args and returns its int result,
// or fallback when the function is missing or fails.
func (e *Engine) callIntFunc(name string, fallback int, args ...int) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return fallback
	}

	lArgs := make([]lua.LValue, len(args))
	for i, a := range args {
		lArgs[i] = lua.LNumber(a)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lArgs...); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	return int(lua.LVAsNumber(result))
}

// callTableFunc calls a Lua function with a single context table and returns
// its numeric result, or fallback when the function is missing or fails.
func (e *Engine) callTableFunc(name string, fallback int, fields map[string]lua.LValue) int {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return fallback
	}

	t := e.vm.NewTable()
	for k, v := range fields {
		t.RawSetString(k, v)
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua call error", zap.String("func", name), zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua function returned non-number", zap.String("func", name))
		return fallback
	}
	return int(n)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
