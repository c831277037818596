package main

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/polybius/arena/internal/clock"
	"github.com/polybius/arena/internal/config"
	"github.com/polybius/arena/internal/game"
	"github.com/polybius/arena/internal/input"
	"github.com/polybius/arena/internal/world"
	"go.uber.org/zap"
)

const (
	// Terminals report presses and auto-repeat but never releases; a
	// movement key counts as released after this long without a repeat.
	keyRelease = 350 * time.Millisecond

	yawStep   = math.Pi / 12
	pitchStep = math.Pi / 18
	maxPitch  = 85 * math.Pi / 180
)

var (
	styleWall       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleEnemy      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleEnemyFlash = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePickup     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	black = colorful.Color{}
)

// heldKey tracks one movement axis driven by auto-repeating keys.
type heldKey struct {
	value float64
	last  time.Time
}

// terminal renders the arena top-down and turns key presses into commands.
type terminal struct {
	sess *game.Session
	cfg  config.FrontendConfig
	log  *zap.Logger
	clk  clock.Clock

	screen tcell.Screen
	done   chan struct{}
	once   sync.Once

	mu         sync.Mutex
	held       map[input.Axis]*heldKey
	yaw, pitch float64
}

func newTerminal(sess *game.Session, cfg config.FrontendConfig, log *zap.Logger) *terminal {
	return &terminal{
		sess: sess,
		cfg:  cfg,
		log:  log,
		clk:  clock.System{},
		done: make(chan struct{}),
		held: make(map[input.Axis]*heldKey, 2),
	}
}

func (t *terminal) Start() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.HideCursor()
	t.screen = screen
	w, h := screen.Size()
	t.log.Info("terminal view started", zap.Int("cols", w), zap.Int("rows", h))

	go t.pollLoop()
	go t.renderLoop()
	return nil
}

func (t *terminal) AfterTick() {}

func (t *terminal) Done() <-chan struct{} { return t.done }

func (t *terminal) Close() {
	t.quit()
	if t.screen != nil {
		t.screen.Fini()
	}
}

func (t *terminal) quit() { t.once.Do(func() { close(t.done) }) }

func (t *terminal) pollLoop() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if !t.handleKey(ev, t.clk.Now()) {
				t.quit()
				return
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// handleKey maps one key press to commands. It returns false on quit.
func (t *terminal) handleKey(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		t.sess.Push(input.Command{Kind: input.PauseToggle})
	case tcell.KeyEnter:
		t.sess.Push(input.Command{Kind: input.Fire})
	case tcell.KeyLeft:
		t.turn(-yawStep, 0)
	case tcell.KeyRight:
		t.turn(yawStep, 0)
	case tcell.KeyUp:
		t.turn(0, pitchStep)
	case tcell.KeyDown:
		t.turn(0, -pitchStep)
	case tcell.KeyRune:
		return t.handleRune(ev.Rune(), now)
	}
	return true
}

func (t *terminal) handleRune(r rune, now time.Time) bool {
	switch r {
	case 'w', 'W':
		t.press(input.AxisForward, 1, now)
	case 's', 'S':
		t.press(input.AxisForward, -1, now)
	case 'a', 'A':
		t.press(input.AxisStrafe, -1, now)
	case 'd', 'D':
		t.press(input.AxisStrafe, 1, now)
	case ' ':
		t.sess.Push(input.Command{Kind: input.Jump})
	case 'f', 'F':
		t.sess.Push(input.Command{Kind: input.Fire})
	case 'p', 'P':
		t.sess.Push(input.Command{Kind: input.PauseToggle})
	case 'r', 'R':
		if t.sess.State() == world.Over {
			t.sess.Push(input.Command{Kind: input.Restart})
		}
	case 'q', 'Q':
		return false
	}
	return true
}

func (t *terminal) press(axis input.Axis, value float64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	k, ok := t.held[axis]
	if !ok {
		k = &heldKey{}
		t.held[axis] = k
	}
	k.last = now
	if k.value != value {
		k.value = value
		t.sess.Push(input.Move(axis, value))
	}
}

// releaseStale sends a zero intent for axes whose key stopped repeating.
func (t *terminal) releaseStale(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for axis, k := range t.held {
		if k.value != 0 && now.Sub(k.last) > keyRelease {
			k.value = 0
			t.sess.Push(input.Move(axis, 0))
		}
	}
}

func (t *terminal) turn(dyaw, dpitch float64) {
	t.mu.Lock()
	t.yaw = math.Mod(t.yaw+dyaw, 2*math.Pi)
	t.pitch = mgl64.Clamp(t.pitch+dpitch, -maxPitch, maxPitch)
	dir := viewDirection(t.yaw, t.pitch)
	t.mu.Unlock()
	t.sess.Push(input.LookAt(dir))
}

// viewDirection converts yaw (0 = looking down -Z, positive turns right)
// and pitch into a unit direction.
func viewDirection(yaw, pitch float64) mgl64.Vec3 {
	c := math.Cos(pitch)
	return mgl64.Vec3{math.Sin(yaw) * c, math.Sin(pitch), -math.Cos(yaw) * c}
}

func (t *terminal) renderLoop() {
	ticker := time.NewTicker(t.cfg.RenderRate)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			t.releaseStale(now)
			if snap := t.sess.Snapshot(); snap != nil {
				t.draw(snap)
			}
		case <-t.done:
			return
		}
	}
}

// grid maps arena x/z onto screen cells, -Z at the top.
type grid struct {
	cols, rows int
	half       float64
}

func (g grid) cell(p mgl64.Vec3) (int, int, bool) {
	if g.cols <= 0 || g.rows <= 0 || g.half <= 0 {
		return 0, 0, false
	}
	fx := (p.X() + g.half) / (2 * g.half)
	fz := (p.Z() + g.half) / (2 * g.half)
	if fx < 0 || fx > 1 || fz < 0 || fz > 1 {
		return 0, 0, false
	}
	col := min(int(fx*float64(g.cols)), g.cols-1)
	row := min(int(fz*float64(g.rows)), g.rows-1)
	return col + 1, row + 1, true
}

// heading picks the arrow closest to the horizontal view direction.
func heading(view mgl64.Vec3) rune {
	angle := math.Atan2(view.X(), -view.Z())
	arrows := []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}
	i := int(math.Round(angle/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

func fade(c colorful.Color, age float64) tcell.Color {
	r, g, b := c.BlendLab(black, mgl64.Clamp(age, 0, 1)).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *terminal) draw(snap *world.Snapshot) {
	s := t.screen
	w, h := s.Size()
	s.Clear()

	g := grid{cols: w - 2, rows: h - 4, half: snap.RoomSize / 2}
	t.drawBorder(g)

	for _, p := range snap.Pickups {
		if x, y, ok := g.cell(p.Position); ok {
			s.SetContent(x, y, '+', nil, stylePickup)
		}
	}
	for _, p := range snap.Particles {
		if x, y, ok := g.cell(p.Position); ok {
			s.SetContent(x, y, '*', nil, tcell.StyleDefault.Foreground(fade(p.Color, p.Age)))
		}
	}
	for _, e := range snap.Enemies {
		if x, y, ok := g.cell(e.Position); ok {
			style := styleEnemy
			if e.Flashing {
				style = styleEnemyFlash
			}
			s.SetContent(x, y, '■', nil, style)
		}
	}
	for _, p := range snap.Projectiles {
		if x, y, ok := g.cell(p.Position); ok {
			s.SetContent(x, y, '·', nil, styleProjectile)
		}
	}
	if x, y, ok := g.cell(snap.Player.Position); ok {
		s.SetContent(x, y, heading(snap.Player.View), nil, stylePlayer)
	}

	t.drawHUD(snap, h-2)
	s.Show()
}

func (t *terminal) drawBorder(g grid) {
	s := t.screen
	for x := 0; x <= g.cols+1; x++ {
		s.SetContent(x, 0, '─', nil, styleWall)
		s.SetContent(x, g.rows+1, '─', nil, styleWall)
	}
	for y := 1; y <= g.rows; y++ {
		s.SetContent(0, y, '│', nil, styleWall)
		s.SetContent(g.cols+1, y, '│', nil, styleWall)
	}
}

func (t *terminal) drawHUD(snap *world.Snapshot, y int) {
	hud := snap.HUD
	line := fmt.Sprintf("HP %3d/%d   LV %d   XP %d/%d   %6.1fs   enemies %d",
		hud.Health, hud.MaxHealth, hud.Level, hud.XP, hud.XPToNextLevel,
		snap.Time.Seconds(), len(snap.Enemies))
	t.text(0, y, line, styleHUD)

	switch hud.State {
	case world.Paused:
		t.text(0, y+1, "PAUSED  p/esc resume  q quit", styleBanner)
	case world.Over:
		t.text(0, y+1, fmt.Sprintf("RUN OVER at level %d  r restart  q quit", hud.Level), styleBanner)
	default:
		t.text(0, y+1, "wasd move  arrows look  space jump  f fire  p pause  q quit", styleWall)
	}
}

func (t *terminal) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
