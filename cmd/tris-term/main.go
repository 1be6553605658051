package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tris/internal/app"
	_ "tris/internal/sims/solid"
	_ "tris/internal/sims/stack"
	"tris/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Strategy = "fixed"
	cfg.Bind(flag.CommandLine)
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	sim, err := cfg.NewSim()
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	// The screen owns the terminal; log lines would corrupt it.
	log.SetOutput(out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = term.Run(ctx, screen, cfg, sim)
	stop()
	screen.Fini()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
