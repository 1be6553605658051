package ui

import (
	"fmt"

	"tris/internal/core"
	"tris/internal/loop"
)

// Source is what the HUD reports on.
type Source interface {
	Sim() core.Sim
	CellSize() float64
	Strategy() loop.Strategy
	Stats() loop.Stats
}

// Rates are the host-measured frame and tick rates.
type Rates struct {
	FPS float64
	TPS float64
}

// Lines formats the HUD text for src.
func Lines(src Source, r Rates) []string {
	if src == nil {
		return nil
	}
	sim := src.Sim()
	size := sim.Size()
	st := src.Stats()
	return []string{
		fmt.Sprintf("%s %dx%d", sim.Name(), size.W, size.H),
		fmt.Sprintf("FPS %.1f  TPS %.1f", r.FPS, r.TPS),
		fmt.Sprintf("cell %.2fpx  %s", src.CellSize(), src.Strategy()),
		fmt.Sprintf("ticks %d  dropped %d", st.Ticks, st.Coalesced),
		fmt.Sprintf("frames %d  renders %d", st.Frames, st.Renders),
	}
}
