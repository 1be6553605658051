package term

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tris/internal/app"
	"tris/internal/core"
	"tris/internal/loop"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"
)

// errQuit ends the event loop without reporting a failure.
var errQuit = errors.New("quit")

type quitEvent struct{}

// Dispatcher returns a loop.Dispatch that runs callbacks on the goroutine
// polling screen events.
func Dispatcher(screen tcell.Screen) loop.Dispatch {
	return func(fn func()) bool {
		return screen.PostEvent(tcell.NewEventInterrupt(fn)) == nil
	}
}

// Run drives sim on an initialized screen until ctx is cancelled or the user
// quits with q, Escape or Ctrl-C. The caller owns screen and finalizes it.
func Run(ctx context.Context, screen tcell.Screen, cfg *app.Config, sim core.Sim) error {
	surface := NewSurface(screen)
	dispatch := Dispatcher(screen)
	clock := loop.MonotonicClock()
	host := app.Host{
		Surface: surface,
		Timer:   loop.NewTickerTimer(dispatch),
		Clock:   clock,
	}
	if cfg.LoopStrategy() == loop.Decoupled {
		host.Frames = loop.NewAfterFrames(time.Second/time.Duration(cfg.FPS), dispatch, clock)
	}
	sess, err := app.NewSession(cfg, sim, host)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-done:
			return nil
		}
		for screen.PostEvent(tcell.NewEventInterrupt(quitEvent{})) != nil {
			select {
			case <-done:
				return nil
			case <-time.After(10 * time.Millisecond):
			}
		}
		return nil
	})
	g.Go(func() error {
		defer close(done)
		sess.Start()
		defer sess.Close()
		log.Printf("term: %s on %s loop", sim.Name(), sess.Strategy())
		return events(screen, sess)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return fmt.Errorf("term: %w", err)
	}
	return nil
}

func events(screen tcell.Screen, sess *app.Session) error {
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return errQuit
		case *tcell.EventResize:
			screen.Sync()
			sess.Resize(sess.Surface().Size())
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return errQuit
			}
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case func():
				data()
			case quitEvent:
				return errQuit
			}
		}
	}
}
