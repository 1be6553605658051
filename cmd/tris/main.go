//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"math"

	"tris/internal/app"
	_ "tris/internal/sims/solid"
	_ "tris/internal/sims/stack"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}
	game, err := app.New(cfg, sim)
	if err != nil {
		log.Fatal(err)
	}
	size := sim.Size()
	log.Printf("tris: %s %dx%d at %.0f ticks/s", sim.Name(), size.W, size.H, cfg.TPS)

	ebiten.SetWindowTitle("tris - " + sim.Name())
	ebiten.SetTPS(max(ebiten.DefaultTPS, int(math.Ceil(cfg.TPS))))
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
