package app

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"tris/internal/core"
	"tris/internal/loop"
	"tris/internal/render"
)

// ErrUnknownSim is returned when the configured simulation is not registered.
var ErrUnknownSim = errors.New("unknown sim")

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Width    int
	Height   int
	TPS      float64
	Strategy string
	Seed     int64

	Fill         *render.ColorValue
	Outline      *render.ColorValue
	Empty        *render.ColorValue
	OutlineWidth float64

	// Scale is the initial window size in pixels per cell.
	Scale int
	// FPS is the emulated refresh rate for hosts without vsync.
	FPS   int
	Debug bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	style := render.DefaultStyle()
	return &Config{
		Sim:          "stack",
		Width:        10,
		Height:       20,
		TPS:          loop.DefaultRate,
		Strategy:     loop.Decoupled.String(),
		Seed:         42,
		Fill:         render.NewColorValue(style.Fill, "rgba(20, 20, 30, 1)"),
		Outline:      render.NewColorValue(style.Outline, "rgba(170, 190, 180, 1)"),
		Empty:        render.NewColorValue(nil, "none"),
		OutlineWidth: style.OutlineWidth,
		Scale:        32,
		FPS:          30,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "playfield collaborator to run ("+strings.Join(core.SimNames(), ", ")+")")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.Float64Var(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "loop strategy: decoupled or fixed")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the playfield collaborator")
	fs.Var(c.Fill, "fill", "cell fill color")
	fs.Var(c.Outline, "outline", "cell outline color")
	fs.Var(c.Empty, "empty", "color for unoccupied cells, or none")
	fs.Float64Var(&c.OutlineWidth, "outline-width", c.OutlineWidth, "cell outline width in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "initial window pixels per cell")
	fs.IntVar(&c.FPS, "fps", c.FPS, "emulated refresh rate where the host has no vsync")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "show loop statistics")
}

// Validate reports configuration errors that must stop startup.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: %w: got %dx%d", core.ErrInvalidSize, c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("config: %w: %v", loop.ErrInvalidRate, c.TPS)
	}
	if _, err := loop.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.OutlineWidth < 0 {
		return fmt.Errorf("config: negative outline width %v", c.OutlineWidth)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %d", c.Scale)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if _, ok := core.Sims()[c.Sim]; !ok {
		return fmt.Errorf("config: %w %q", ErrUnknownSim, c.Sim)
	}
	return nil
}

// LoopStrategy returns the parsed loop strategy.
func (c *Config) LoopStrategy() loop.Strategy {
	s, err := loop.ParseStrategy(c.Strategy)
	if err != nil {
		return loop.Decoupled
	}
	return s
}

// Style returns the renderer style described by the configuration.
func (c *Config) Style() render.Style {
	return render.Style{
		Fill:         c.Fill.Color(),
		Outline:      c.Outline.Color(),
		OutlineWidth: c.OutlineWidth,
		Empty:        c.Empty.Color(),
	}
}

// SimConfig returns the key/value map handed to the simulation factory.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"w":    strconv.Itoa(c.Width),
		"h":    strconv.Itoa(c.Height),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
}

// NewSim constructs the configured simulation.
func (c *Config) NewSim() (core.Sim, error) {
	factory, ok := core.Sims()[c.Sim]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSim, c.Sim)
	}
	sim, err := factory(c.SimConfig())
	if err != nil {
		return nil, fmt.Errorf("sim %s: %w", c.Sim, err)
	}
	return sim, nil
}
