package scene

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/san-kum/nlink/internal/chain"
	"github.com/san-kum/nlink/internal/geometry"
	"github.com/san-kum/nlink/internal/raster"
)

// tracer writes to trace with key 'nlink.scene'
func tracer() tracing.Trace {
	return tracing.Select("nlink.scene")
}

const (
	DefaultJointRadius = 2
	MaxJointRadius     = 16
)

var (
	// ErrNoSurface indicates a Driver constructed without a surface.
	ErrNoSurface = errors.New("scene: nil surface")

	// ErrTimestep indicates a non-positive dt.
	ErrTimestep = errors.New("scene: dt must be positive")

	// ErrSelection indicates an initial selection outside the chain.
	ErrSelection = errors.New("scene: selected link out of range")
)

// Options configure a Driver.
type Options struct {
	Links       []chain.Link
	Params      chain.Params
	Margin      int
	JointRadius int
	Selected    int
	Paused      bool
	ShowStatus  bool
}

// Driver owns the simulated chain and renders it frame by frame.
type Driver struct {
	surface  Surface
	chain    *chain.Chain
	links    []chain.Link
	params   chain.Params
	margin   int
	radius   int
	status   bool
	selected int
	state    State
	viewport geometry.Viewport

	initial      *chain.Chain
	initialLinks []chain.Link
	diverged     bool

	steps uint64
	ticks uint64
}

// NewDriver validates opts against c and sizes the viewport from the
// surface. The driver takes ownership of c.
func NewDriver(s Surface, c *chain.Chain, opts Options) (*Driver, error) {
	if s == nil {
		return nil, ErrNoSurface
	}
	if c == nil {
		return nil, chain.ErrEmptyChain
	}
	if err := chain.ValidateLinks(opts.Links, c.Len()); err != nil {
		return nil, err
	}
	if !(opts.Params.Dt > 0) {
		return nil, fmt.Errorf("%w, got %g", ErrTimestep, opts.Params.Dt)
	}
	if opts.Selected < 0 || opts.Selected >= c.Len() {
		return nil, fmt.Errorf("%w: %d", ErrSelection, opts.Selected)
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	if opts.JointRadius > MaxJointRadius {
		opts.JointRadius = MaxJointRadius
	}

	links := append([]chain.Link(nil), opts.Links...)
	d := &Driver{
		surface:      s,
		chain:        c,
		links:        links,
		params:       opts.Params,
		margin:       opts.Margin,
		radius:       opts.JointRadius,
		status:       opts.ShowStatus,
		selected:     opts.Selected,
		state:        Running,
		initial:      c.Clone(),
		initialLinks: append([]chain.Link(nil), links...),
	}
	if opts.Paused {
		d.state = Paused
	}
	w, h := s.Size()
	d.viewport = geometry.NewViewport(w, h, d.margin)
	return d, nil
}

func (d *Driver) State() State                { return d.state }
func (d *Driver) Selected() int               { return d.selected }
func (d *Driver) Viewport() geometry.Viewport { return d.viewport }

// Steps is the number of times the chain has been advanced.
func (d *Driver) Steps() uint64 { return d.steps }

// Ticks is the number of completed Tick calls.
func (d *Driver) Ticks() uint64 { return d.ticks }

// Chain returns a copy of the current chain state.
func (d *Driver) Chain() *chain.Chain { return d.chain.Clone() }

// Links returns a copy of the current link parameters.
func (d *Driver) Links() []chain.Link { return append([]chain.Link(nil), d.links...) }

// Apply performs the state transition for a without stepping or rendering.
func (d *Driver) Apply(a Action) {
	if d.state == Terminated {
		return
	}
	switch a := a.(type) {
	case nil, None:
	case Quit:
		d.state = Terminated
	case TogglePause:
		if d.state == Running {
			d.state = Paused
		} else {
			d.state = Running
		}
	case SelectLink:
		if a.Index >= 0 && a.Index < d.chain.Len() {
			d.selected = a.Index
		}
	case CycleSelection:
		n := d.chain.Len()
		d.selected = ((d.selected+a.Delta)%n + n) % n
	case Resize:
		d.viewport = geometry.NewViewport(a.Width, a.Height, d.margin)
	case AddLink:
		last := d.links[len(d.links)-1]
		d.links = append(d.links, last)
		d.chain.AddLink(0, 0)
	case RemoveLink:
		if err := d.chain.RemoveLink(); err != nil {
			tracer().Debugf("scene: %v", err)
			break
		}
		d.links = d.links[:len(d.links)-1]
	case Reset:
		if err := d.chain.Reset(d.initial.Angles, d.initial.Velocities); err != nil {
			tracer().Errorf("scene: reset: %v", err)
			break
		}
		d.links = append(d.links[:0], d.initialLinks...)
	default:
		tracer().Errorf("scene: unhandled action %T", a)
	}
	if d.selected >= d.chain.Len() {
		d.selected = d.chain.Len() - 1
	}
	if a != nil {
		if _, idle := a.(None); !idle {
			tracer().Debugf("scene: %v -> %s", a, d.state)
		}
	}
}

// Tick applies a, advances the chain once when running and renders a full
// frame. A terminated driver neither steps nor renders.
func (d *Driver) Tick(a Action) error {
	d.Apply(a)
	if d.state == Terminated {
		return nil
	}
	if d.state == Running {
		chain.Step(d.chain, d.links, d.params.Gravity, d.params.Dt)
		d.steps++
	}
	d.ticks++
	return d.Render()
}

// Diverged reports whether the chain state holds a NaN or infinite value.
// A diverged chain is not drawn; only the status line is.
func (d *Driver) Diverged() bool { return !d.chain.IsValid() }

// Render draws the current chain without changing it.
func (d *Driver) Render() error {
	d.surface.Clear()

	if d.Diverged() {
		if !d.diverged {
			tracer().Errorf("scene: %v, chain not drawn", chain.ErrNonFinite)
		}
		d.diverged = true
	} else {
		d.diverged = false
		d.drawChain()
	}

	if d.status {
		d.drawStatus()
	}
	if err := d.surface.Show(); err != nil {
		tracer().Errorf("scene: show failed: %v", err)
		return fmt.Errorf("scene: show: %w", err)
	}
	return nil
}

func (d *Driver) drawChain() {
	lengths := chain.Lengths(d.links)
	reach := geometry.Reach(lengths)
	cells := geometry.ToCells(geometry.Joints(lengths, d.chain.Angles), reach, d.viewport)

	prev := d.viewport.Center
	for i, cell := range cells {
		rod, marker := raster.Rod, raster.Joint
		if i == d.selected {
			rod, marker = raster.RodSelected, raster.JointSelected
		}
		raster.DrawLine(d.surface, prev, cell, rod)
		raster.DrawCircle(d.surface, cell, d.radius, marker)
		prev = cell
	}
}

func (d *Driver) drawStatus() {
	l := d.links[d.selected]
	head := fmt.Sprintf(" link %d/%d  L=%.2f  m=%.1f  θ=%+.2f ",
		d.selected+1, d.chain.Len(), l.Length, l.Mass, d.chain.Angles[d.selected])
	d.surface.Text(0, 0, head, raster.Text)
	tail := fmt.Sprintf(" %s  g=%.2f  dt=%.3f", d.state, d.params.Gravity, d.params.Dt)
	d.surface.Text(len([]rune(head)), 0, tail, raster.TextMuted)
}

// Interval is the bounded input wait of one tick, dt rounded to whole
// milliseconds.
func (d *Driver) Interval() time.Duration {
	return time.Duration(math.Round(d.params.Dt*1000)) * time.Millisecond
}

// Run renders the first frame and then ticks until Quit, context
// cancellation or a surface error. Each tick waits up to Interval for one
// action; an action arriving earlier ends the wait immediately. A closed
// actions channel is treated as Quit.
func (d *Driver) Run(ctx context.Context, actions <-chan Action) error {
	if err := d.Render(); err != nil {
		return err
	}
	wait := d.Interval()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		var a Action = None{}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case act, ok := <-actions:
			if !ok {
				act = Quit{}
			}
			a = act
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-timer.C:
		}
		timer.Reset(wait)

		if err := d.Tick(a); err != nil {
			return err
		}
		if d.state == Terminated {
			tracer().Infof("scene: terminated after %d ticks, %d steps", d.ticks, d.steps)
			return nil
		}
	}
}
