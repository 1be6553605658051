package app

import (
	"image/color"
	"testing"
	"time"

	"tris/internal/loop"
	"tris/internal/render"
	"tris/internal/sims/solid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	sess    *Session
	surface *render.ImageSurface
	timer   *loop.ManualTimer
	frames  *loop.ManualFrames
	now     float64
}

func newHarness(t *testing.T, w, h int, frames bool) *harness {
	t.Helper()
	cfg := NewConfig()
	cfg.Width, cfg.Height = w, h
	sim, err := solid.New(solid.Config{Width: w, Height: h})
	require.NoError(t, err)

	hs := &harness{
		surface: render.NewImageSurface(0, 0),
		timer:   &loop.ManualTimer{},
	}
	host := Host{
		Surface: hs.surface,
		Timer:   hs.timer,
		Clock:   func() float64 { return hs.now },
	}
	if frames {
		hs.frames = &loop.ManualFrames{}
		host.Frames = hs.frames
	}
	hs.sess, err = NewSession(cfg, sim, host)
	require.NoError(t, err)
	return hs
}

func TestNewSessionErrors(t *testing.T) {
	sim, err := solid.New(solid.DefaultConfig())
	require.NoError(t, err)

	_, err = NewSession(NewConfig(), sim, Host{Timer: &loop.ManualTimer{}})
	assert.ErrorIs(t, err, ErrNoSurface)

	cfg := NewConfig()
	cfg.TPS = 0
	_, err = NewSession(cfg, sim, Host{Surface: render.NewImageSurface(1, 1), Timer: &loop.ManualTimer{}})
	assert.ErrorIs(t, err, loop.ErrInvalidRate)

	_, err = NewSession(NewConfig(), sim, Host{Surface: render.NewImageSurface(1, 1)})
	assert.ErrorIs(t, err, loop.ErrNoTimer)
}

func TestResizeRendersAtNewSize(t *testing.T) {
	hs := newHarness(t, 10, 20, true)

	hs.sess.Resize(640, 480)
	assert.Equal(t, 24.0, hs.sess.CellSize())
	w, h := hs.surface.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	img := hs.surface.Image()
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 30, A: 255}, img.RGBAAt(12, 12), "cell interior filled")
	assert.Equal(t, color.RGBA{R: 170, G: 190, B: 180, A: 255}, img.RGBAAt(24, 12), "shared cell edge outlined")
	assert.Equal(t, color.RGBA{}, img.RGBAAt(400, 100), "outside the grid stays clear")
	assert.Equal(t, uint64(1), hs.sess.Stats().Renders)
}

func TestResizeFollowsSurface(t *testing.T) {
	hs := newHarness(t, 16, 30, true)

	hs.sess.Resize(800, 600)
	assert.Equal(t, 20.0, hs.sess.CellSize())

	hs.sess.Resize(1600, 300)
	assert.Equal(t, 10.0, hs.sess.CellSize())
	assert.Equal(t, color.RGBA{}, hs.surface.Image().RGBAAt(1000, 150), "stale pixels are not kept")
}

func TestDegenerateResizeIsHarmless(t *testing.T) {
	hs := newHarness(t, 10, 20, true)
	hs.sess.Resize(640, 480)

	require.NotPanics(t, func() { hs.sess.Resize(0, 0) })
	assert.Zero(t, hs.sess.CellSize())

	hs.sess.Resize(320, 240)
	assert.Equal(t, 12.0, hs.sess.CellSize())
}

func TestStartUsesCurrentSurfaceSize(t *testing.T) {
	hs := newHarness(t, 10, 20, true)
	hs.surface.Resize(200, 400)

	hs.sess.Start()
	defer hs.sess.Close()

	assert.Equal(t, 20.0, hs.sess.CellSize())
	assert.True(t, hs.sess.Running())
	assert.Equal(t, uint64(1), hs.sess.Stats().Renders, "first frame drawn at startup")
}

func TestDecoupledSessionCadence(t *testing.T) {
	hs := newHarness(t, 10, 20, true)
	hs.surface.Resize(100, 200)
	hs.sess.Start()
	require.Equal(t, loop.Decoupled, hs.sess.Strategy())

	hs.now = 16
	require.True(t, hs.timer.Fire())
	hs.now = 33
	require.True(t, hs.timer.Fire())
	require.True(t, hs.frames.Fire(40))

	st := hs.sess.Stats()
	assert.Equal(t, uint64(2), st.Ticks)
	assert.Equal(t, uint64(1), st.Frames)
	assert.Equal(t, uint64(2), st.Renders)
	assert.Equal(t, 33.0, st.LastTick)
	assert.Equal(t, 33.0, hs.sess.Sim().(*solid.Solid).LastAdvance())

	hs.sess.Stop()
	assert.False(t, hs.timer.Active())
	assert.False(t, hs.frames.Pending())
	assert.False(t, hs.sess.Running())
}

func TestFixedSessionWithoutFrames(t *testing.T) {
	hs := newHarness(t, 10, 20, false)
	hs.surface.Resize(100, 200)
	hs.sess.Start()
	defer hs.sess.Close()

	assert.Equal(t, loop.FixedInterval, hs.sess.Strategy())
	hs.timer.Fire()
	hs.timer.Fire()

	st := hs.sess.Stats()
	assert.Equal(t, uint64(2), st.Ticks)
	assert.Equal(t, uint64(3), st.Renders, "startup frame plus one per tick")
}

func TestClosedSessionDoesNotRestart(t *testing.T) {
	hs := newHarness(t, 10, 20, true)
	hs.sess.Close()
	hs.sess.Start()
	assert.False(t, hs.sess.Running())
	assert.False(t, hs.timer.Active())
}

func TestResizeWhileTickingOnAnotherGoroutine(t *testing.T) {
	cfg := NewConfig()
	cfg.TPS = 1000
	cfg.Strategy = "fixed"
	sim, err := solid.New(solid.Config{Width: 10, Height: 20})
	require.NoError(t, err)

	surface := render.NewImageSurface(100, 200)
	sess, err := NewSession(cfg, sim, Host{
		Surface: surface,
		Timer:   loop.NewTickerTimer(nil),
	})
	require.NoError(t, err)
	sess.Start()

	sizes := [][2]int{{640, 480}, {320, 240}, {0, 0}, {800, 600}, {200, 400}}
	deadline := time.Now().Add(100 * time.Millisecond)
	for i := 0; time.Now().Before(deadline); i++ {
		sz := sizes[i%len(sizes)]
		sess.Resize(sz[0], sz[1])
	}
	sess.Resize(200, 400)
	sess.Close()

	assert.Equal(t, 20.0, sess.CellSize())
	st := sess.Stats()
	assert.Positive(t, st.Ticks+st.Coalesced, "ticks fired alongside the resizes")
}
