package main

import (
	"flag"
	"fmt"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"tris/internal/app"
	"tris/internal/loop"
	"tris/internal/render"
	_ "tris/internal/sims/solid"
	_ "tris/internal/sims/stack"

	"golang.org/x/sync/errgroup"
)

type viewSize struct {
	w, h int
}

func (v viewSize) String() string { return fmt.Sprintf("%dx%d", v.w, v.h) }

func parseSizes(list string) ([]viewSize, error) {
	var sizes []viewSize
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		ws, hs, ok := strings.Cut(field, "x")
		if !ok {
			return nil, fmt.Errorf("size %q: want WIDTHxHEIGHT", field)
		}
		w, err := strconv.Atoi(ws)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", field, err)
		}
		h, err := strconv.Atoi(hs)
		if err != nil {
			return nil, fmt.Errorf("size %q: %w", field, err)
		}
		if w < 0 || h < 0 {
			return nil, fmt.Errorf("size %q: negative dimension", field)
		}
		sizes = append(sizes, viewSize{w: w, h: h})
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	return sizes, nil
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	sizeList := flag.String("sizes", "640x480", "comma-separated surface sizes to render")
	ticks := flag.Int("ticks", 600, "ticks to simulate before the snapshot")
	outDir := flag.String("out", ".", "directory for the PNG files")
	workers := flag.Int("workers", runtime.NumCPU(), "number of sizes rendered concurrently")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	sizes, err := parseSizes(*sizeList)
	if err != nil {
		log.Fatal(err)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	var g errgroup.Group
	g.SetLimit(max(*workers, 1))
	for _, size := range sizes {
		g.Go(func() error {
			path := filepath.Join(*outDir, fmt.Sprintf("%s-%s.png", cfg.Sim, size))
			return snapshot(cfg, size, *ticks, path)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d snapshots in %v", len(sizes), time.Since(start).Round(time.Millisecond))
}

// snapshot runs its own sim for ticks simulated periods and writes the final
// frame at size to path.
func snapshot(cfg *app.Config, size viewSize, ticks int, path string) error {
	sim, err := cfg.NewSim()
	if err != nil {
		return err
	}
	surface := render.NewImageSurface(size.w, size.h)
	timer := &loop.ManualTimer{}
	frames := &loop.ManualFrames{}
	var now float64
	sess, err := app.NewSession(cfg, sim, app.Host{
		Surface: surface,
		Timer:   timer,
		Frames:  frames,
		Clock:   func() float64 { return now },
	})
	if err != nil {
		return err
	}
	sess.Start()
	defer sess.Close()

	period := 1000 / cfg.TPS
	for i := 0; i < ticks; i++ {
		now += period
		timer.Fire()
	}
	if !frames.Fire(now) {
		sess.Render()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, surface.Image()); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	st := sess.Stats()
	log.Printf("%s: %s cell %.2fpx, %d ticks, %d renders", path, size, sess.CellSize(), st.Ticks, st.Renders)
	return nil
}
