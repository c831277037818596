package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/polybius/arena/internal/world"
)

func TestViewDirection(t *testing.T) {
	tests := []struct {
		yaw, pitch float64
		want       mgl64.Vec3
	}{
		{0, 0, mgl64.Vec3{0, 0, -1}},
		{math.Pi / 2, 0, mgl64.Vec3{1, 0, 0}},
		{math.Pi, 0, mgl64.Vec3{0, 0, 1}},
		{0, math.Pi / 2, mgl64.Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		if got := viewDirection(tt.yaw, tt.pitch); !got.ApproxEqualThreshold(tt.want, 1e-9) {
			t.Errorf("viewDirection(%v, %v) = %v, want %v", tt.yaw, tt.pitch, got, tt.want)
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		view mgl64.Vec3
		want rune
	}{
		{mgl64.Vec3{0, 0, -1}, '↑'},
		{mgl64.Vec3{1, 0, 0}, '→'},
		{mgl64.Vec3{0, 0, 1}, '↓'},
		{mgl64.Vec3{-1, 0, 0}, '←'},
		{mgl64.Vec3{-1, 0, -1}, '↖'},
	}
	for _, tt := range tests {
		if got := heading(tt.view); got != tt.want {
			t.Errorf("heading(%v) = %c, want %c", tt.view, got, tt.want)
		}
	}
}

func TestGridCell(t *testing.T) {
	g := grid{cols: 50, rows: 20, half: 25}
	tests := []struct {
		p        mgl64.Vec3
		x, y     int
		onScreen bool
	}{
		{mgl64.Vec3{-25, 0, -25}, 1, 1, true},
		{mgl64.Vec3{25, 0, 25}, 50, 20, true},
		{mgl64.Vec3{0, 0, 0}, 26, 11, true},
		{mgl64.Vec3{30, 0, 0}, 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := g.cell(tt.p)
		if ok != tt.onScreen || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("cell(%v) = %d,%d,%v want %d,%d,%v", tt.p, x, y, ok, tt.x, tt.y, tt.onScreen)
		}
	}
}

func TestFadeDarkens(t *testing.T) {
	red, _ := colorful.Hex("#ff0000")
	r0, _, _ := fade(red, 0).RGB()
	r1, g1, b1 := fade(red, 1).RGB()
	if r0 != 255 || r1 != 0 || g1 != 0 || b1 != 0 {
		t.Fatalf("fade: start r=%d, end %d,%d,%d", r0, r1, g1, b1)
	}
}

func TestNearestEnemy(t *testing.T) {
	snap := &world.Snapshot{
		Player: world.PlayerView{Position: mgl64.Vec3{0, 1, 0}},
		Enemies: []world.EnemyView{
			{ID: 1, Position: mgl64.Vec3{10, 1, 0}},
			{ID: 2, Position: mgl64.Vec3{0, 1, -3}},
		},
	}
	pos, ok := nearestEnemy(snap)
	if !ok || pos != (mgl64.Vec3{0, 1, -3}) {
		t.Fatalf("nearest = %v %v", pos, ok)
	}
	if _, ok := nearestEnemy(&world.Snapshot{}); ok {
		t.Fatal("found an enemy in an empty arena")
	}
}
