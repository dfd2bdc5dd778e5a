// Package plot runs a chain headless and renders its angle traces as ASCII
// graphs.
package plot

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/nlink/internal/chain"
)

// Trace is the recorded angle of every link after each step. Angles[i][k]
// is link i after step k+1.
type Trace struct {
	Angles     [][]float64
	Velocities [][]float64
	Dt         float64
}

// Record steps a copy of c k times and samples every link after each step.
// c itself is left unchanged.
func Record(c *chain.Chain, links []chain.Link, p chain.Params, k int) *Trace {
	if k < 0 {
		k = 0
	}
	work := c.Clone()
	tr := &Trace{
		Angles:     make([][]float64, work.Len()),
		Velocities: make([][]float64, work.Len()),
		Dt:         p.Dt,
	}
	for i := range tr.Angles {
		tr.Angles[i] = make([]float64, 0, k)
		tr.Velocities[i] = make([]float64, 0, k)
	}
	for step := 0; step < k; step++ {
		chain.Step(work, links, p.Gravity, p.Dt)
		for i := range work.Angles {
			tr.Angles[i] = append(tr.Angles[i], work.Angles[i])
			tr.Velocities[i] = append(tr.Velocities[i], work.Velocities[i])
		}
	}
	return tr
}

// Steps is the number of recorded samples.
func (t *Trace) Steps() int {
	if len(t.Angles) == 0 {
		return 0
	}
	return len(t.Angles[0])
}

var palette = []asciigraph.AnsiColor{
	asciigraph.Red, asciigraph.Blue, asciigraph.Green, asciigraph.Yellow, asciigraph.Magenta, asciigraph.Cyan,
}

// Options control the rendered graph.
type Options struct {
	Width, Height int
	Velocity      bool
	Color         bool
}

// Render plots every link on one graph. It returns an empty string for an
// empty trace.
func Render(t *Trace, opts Options) string {
	if t.Steps() == 0 {
		return ""
	}
	series, label := t.Angles, "angle"
	if opts.Velocity {
		series, label = t.Velocities, "angular velocity"
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 15
	}

	graphOpts := []asciigraph.Option{
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Caption(fmt.Sprintf("%s of %d link(s) over %.2fs", label, len(series), float64(t.Steps())*t.Dt)),
	}
	if opts.Color {
		colors := make([]asciigraph.AnsiColor, len(series))
		for i := range colors {
			colors[i] = palette[i%len(palette)]
		}
		graphOpts = append(graphOpts, asciigraph.SeriesColors(colors...))
	}
	return asciigraph.PlotMany(series, graphOpts...)
}
