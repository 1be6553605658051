package app

import (
	"flag"
	"image/color"
	"io"
	"testing"

	"tris/internal/core"
	"tris/internal/loop"
	_ "tris/internal/sims/solid"
	_ "tris/internal/sims/stack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := parse(t)
	require.NoError(t, err)

	assert.Equal(t, "stack", cfg.Sim)
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, loop.Decoupled, cfg.LoopStrategy())

	style := cfg.Style()
	assert.Equal(t, color.RGBA{R: 20, G: 20, B: 30, A: 255}, style.Fill)
	assert.Equal(t, color.RGBA{R: 170, G: 190, B: 180, A: 255}, style.Outline)
	assert.Equal(t, 2.0, style.OutlineWidth)
	assert.Nil(t, style.Empty)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	cfg, err := parse(t,
		"-sim", "solid", "-w", "16", "-h", "30", "-tps", "30",
		"-strategy", "fixed", "-fill", "red", "-empty", "#000", "-outline", "none")
	require.NoError(t, err)

	assert.Equal(t, loop.FixedInterval, cfg.LoopStrategy())
	style := cfg.Style()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, style.Fill)
	assert.Equal(t, color.RGBA{A: 255}, style.Empty)
	assert.Nil(t, style.Outline)

	sim, err := cfg.NewSim()
	require.NoError(t, err)
	assert.Equal(t, "solid", sim.Name())
	assert.Equal(t, core.Size{W: 16, H: 30}, sim.Size())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"zero width", []string{"-w", "0"}, core.ErrInvalidSize},
		{"negative height", []string{"-h", "-3"}, core.ErrInvalidSize},
		{"zero rate", []string{"-tps", "0"}, loop.ErrInvalidRate},
		{"unknown sim", []string{"-sim", "tetris3d"}, ErrUnknownSim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := parse(t, "-strategy", "vsync")
	assert.Error(t, err)
	_, err = parse(t, "-fill", "not-a-color")
	assert.Error(t, err)
}
