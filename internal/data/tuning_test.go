package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultTuningMatchesArenaConstants(t *testing.T) {
	tu := DefaultTuning()
	if got := tu.Player.GroundLevel(); got != 0.9 {
		t.Fatalf("ground level = %v, want 0.9", got)
	}
	if got := tu.Arena.HalfExtent(); got != 24.5 {
		t.Fatalf("half extent = %v, want 24.5", got)
	}
	if len(tu.Particle.Palette) != len(tu.Particle.Colors) {
		t.Fatalf("palette %d colors, want %d", len(tu.Particle.Palette), len(tu.Particle.Colors))
	}
	if r, g, b := tu.Particle.Palette[4].RGB255(); r != 0xff || g != 0x88 || b != 0 {
		t.Fatalf("orange parsed as %d,%d,%d", r, g, b)
	}
}

func TestParseTuningOverlaysDefaults(t *testing.T) {
	raw := []byte(`
enemy:
  speed: 3.5
  spawn_interval: 2s
particle:
  colors: ["#112233"]
`)
	tu, err := ParseTuning(raw)
	if err != nil {
		t.Fatal(err)
	}
	if tu.Enemy.Speed != 3.5 {
		t.Fatalf("enemy speed = %v", tu.Enemy.Speed)
	}
	if tu.Enemy.SpawnInterval != 2*time.Second {
		t.Fatalf("spawn interval = %v", tu.Enemy.SpawnInterval)
	}
	if tu.Enemy.Health != 3 || tu.Player.JumpForce != 10 {
		t.Fatal("unspecified keys lost their defaults")
	}
	if len(tu.Particle.Palette) != 1 {
		t.Fatalf("palette len = %d", len(tu.Particle.Palette))
	}
}

func TestParseTuningRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad color", "particle:\n  colors: [\"#zzzzzz\"]\n", "particle.colors"},
		{"air control", "player:\n  air_control: 1.5\n", "air_control"},
		{"no room", "arena:\n  wall_margin: 30\n", "wall_margin"},
		{"zero interval", "enemy:\n  spawn_interval: 0s\n", "spawn_interval"},
		{"not yaml", "enemy: [", "parse tuning"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadTuningFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("pickup:\n  xp_value: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tu, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	if tu.Pickup.XPValue != 25 {
		t.Fatalf("xp value = %d", tu.Pickup.XPValue)
	}
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file loaded")
	}
}

func TestWatchedFileKinds(t *testing.T) {
	if !IsTuningFile("data/yaml/tuning.YAML") || IsTuningFile("a.lua") {
		t.Fatal("tuning detection")
	}
	if !IsScriptFile("scripts/core/progression.lua") || IsScriptFile("a.yml") {
		t.Fatal("script detection")
	}
}
