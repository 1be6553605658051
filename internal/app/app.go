//go:build ebiten

package app

import (
	"time"

	"tris/internal/core"
	"tris/internal/loop"
	"tris/internal/render"
	"tris/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game hosts a Session inside ebiten. Update serves as the session's tick
// timer and Draw as its refresh callback, so every advance and render runs on
// ebiten's game thread.
type Game struct {
	sess    *Session
	surface *render.EbitenSurface
	hud     *ui.HUD
	clock   func() float64

	step  *loop.FixedStep
	tick  func()
	timer int

	frame  func(ts float64)
	frames int

	w, h    int
	started bool
}

// New constructs a Game running sim with the given configuration.
func New(cfg *Config, sim core.Sim) (*Game, error) {
	size := sim.Size()
	g := &Game{
		surface: render.NewEbitenSurface(),
		clock:   loop.MonotonicClock(),
	}
	g.surface.Resize(size.W*cfg.Scale, size.H*cfg.Scale)
	sess, err := NewSession(cfg, sim, Host{
		Surface: g.surface,
		Timer:   g,
		Frames:  g,
		Clock:   g.clock,
	})
	if err != nil {
		return nil, err
	}
	g.sess = sess
	g.hud = ui.NewHUD(sess, cfg.Debug)
	return g, nil
}

// Every implements loop.Timer on top of the Update cadence.
func (g *Game) Every(period time.Duration, fn func()) func() {
	g.step = loop.NewFixedStep(period)
	g.tick = fn
	g.timer++
	id := g.timer
	return func() {
		if g.timer == id {
			g.tick = nil
		}
	}
}

// RequestFrame implements loop.FrameRequester; fn runs at the next Draw.
func (g *Game) RequestFrame(fn func(ts float64)) func() {
	g.frame = fn
	g.frames++
	id := g.frames
	return func() {
		if g.frames == id {
			g.frame = nil
		}
	}
}

// Update handles input and fires due ticks.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sess.Close()
		return ebiten.Termination
	}
	if !g.started {
		g.started = true
		g.sess.Start()
	}
	g.hud.Update()

	if g.tick != nil && g.step.ShouldStep(time.Now()) {
		g.tick()
	}
	return nil
}

// Draw runs the pending refresh callback and presents the canvas.
func (g *Game) Draw(screen *ebiten.Image) {
	if fn := g.frame; fn != nil {
		g.frame = nil
		fn(g.clock())
	}
	g.surface.Blit(screen)
	g.hud.Draw(screen)
}

// Layout tracks the window size. A change resizes the session surface, which
// recomputes the cell size and draws a frame at the new size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.sess.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
