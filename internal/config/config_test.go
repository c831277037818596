package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[session]
tick_rate = "10ms"
seed = 42

[frontend]
headless = true
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.TickRate != 10*time.Millisecond {
		t.Errorf("tick_rate = %s", cfg.Session.TickRate)
	}
	if cfg.Session.Seed != 42 {
		t.Errorf("seed = %d", cfg.Session.Seed)
	}
	if !cfg.Frontend.Headless {
		t.Error("headless not set")
	}
	// untouched keys keep defaults
	if cfg.Session.MaxStep != 100*time.Millisecond {
		t.Errorf("max_step = %s", cfg.Session.MaxStep)
	}
	if cfg.Paths.Scripts != "scripts" || !cfg.Session.CheckInvariants {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"zero tick", "[session]\ntick_rate = \"0s\"", "tick_rate"},
		{"zero max step", "[session]\nmax_step = \"0s\"", "max_step"},
		{"max step too long", "[session]\nmax_step = \"2s\"", "max_step"},
		{"bad format", "[logging]\nformat = \"xml\"", "logging.format"},
		{"syntax", "[session", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file loaded")
	}
}
