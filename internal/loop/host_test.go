package loop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedStepGatesUpdates(t *testing.T) {
	fs := NewFixedStep(100 * time.Millisecond)
	base := time.Unix(0, 0)

	assert.True(t, fs.ShouldStep(base), "first call steps immediately")
	assert.False(t, fs.ShouldStep(base.Add(50*time.Millisecond)))
	assert.True(t, fs.ShouldStep(base.Add(100*time.Millisecond)))
	assert.False(t, fs.ShouldStep(base.Add(150*time.Millisecond)))
}

func TestFixedStepDropsBacklog(t *testing.T) {
	fs := NewFixedStep(10 * time.Millisecond)
	base := time.Unix(0, 0)
	require.True(t, fs.ShouldStep(base))

	stalled := base.Add(time.Second)
	assert.True(t, fs.ShouldStep(stalled))
	assert.True(t, fs.ShouldStep(stalled), "one owed step survives the stall")
	assert.False(t, fs.ShouldStep(stalled), "the rest of the stall is dropped")
}

func TestTickerTimerStops(t *testing.T) {
	var fired atomic.Int64
	timer := NewTickerTimer(nil)
	stop := timer.Every(time.Millisecond, func() { fired.Add(1) })

	require.Eventually(t, func() bool { return fired.Load() >= 3 }, time.Second, time.Millisecond)
	stop()
	stop()

	after := fired.Load()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, fired.Load(), after+1, "at most one in-flight tick after stop")
}

func TestTickerTimerKeepsOneTickPending(t *testing.T) {
	queued := make(chan func(), 64)
	timer := NewTickerTimer(func(fn func()) bool {
		queued <- fn
		return true
	})
	var fired atomic.Int64
	stop := timer.Every(time.Millisecond, func() { fired.Add(1) })
	defer stop()

	time.Sleep(30 * time.Millisecond)
	assert.Len(t, queued, 1, "ticks are dropped while one is waiting to run")

	(<-queued)()
	assert.Equal(t, int64(1), fired.Load())
	require.Eventually(t, func() bool { return len(queued) == 1 }, time.Second, time.Millisecond)
}

func TestControllerOnTickerTimerStops(t *testing.T) {
	var advances atomic.Int64
	sim := advanceFunc(func(float64) { advances.Add(1) })

	c, err := NewController(sim, nil, Options{Rate: 500, Strategy: FixedInterval, Timer: NewTickerTimer(nil)})
	require.NoError(t, err)

	c.Start()
	require.Eventually(t, func() bool { return advances.Load() >= 3 }, time.Second, time.Millisecond)
	c.Stop()

	after := advances.Load()
	time.Sleep(20 * time.Millisecond)
	assert.LessOrEqual(t, advances.Load(), after+1)
}

func TestAfterFramesCancel(t *testing.T) {
	var fired atomic.Int64
	frames := NewAfterFrames(time.Millisecond, nil, func() float64 { return 42 })

	var got atomic.Value
	frames.RequestFrame(func(ts float64) {
		got.Store(ts)
		fired.Add(1)
	})
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 42.0, got.Load())

	cancel := frames.RequestFrame(func(float64) { fired.Add(1) })
	cancel()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int64(1), fired.Load())
}

type advanceFunc func(ms float64)

func (f advanceFunc) Advance(ms float64) { f(ms) }
