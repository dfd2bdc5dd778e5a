package chain

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
)

const (
	MinMass = 0.0
	MaxMass = 10.0
)

// tracer writes to trace with key 'nlink.chain'
func tracer() tracing.Trace {
	return tracing.Select("nlink.chain")
}

// Link holds the physical parameters of one pendulum link.
type Link struct {
	Length float64
	Mass   float64
}

// Chain is the integrated state of the pendulum. Angles and Velocities are
// parallel: index i describes link i.
type Chain struct {
	Angles     []float64
	Velocities []float64
}

// New creates a chain from initial angles and angular velocities. The slices
// are copied.
func New(angles, velocities []float64) (*Chain, error) {
	if len(angles) == 0 {
		return nil, ErrEmptyChain
	}
	if len(angles) != len(velocities) {
		return nil, ErrLengthMismatch
	}
	c := &Chain{
		Angles:     make([]float64, len(angles)),
		Velocities: make([]float64, len(velocities)),
	}
	copy(c.Angles, angles)
	copy(c.Velocities, velocities)
	return c, nil
}

// Len returns the number of links.
func (c *Chain) Len() int { return len(c.Angles) }

func (c *Chain) Clone() *Chain {
	n := &Chain{
		Angles:     make([]float64, len(c.Angles)),
		Velocities: make([]float64, len(c.Velocities)),
	}
	copy(n.Angles, c.Angles)
	copy(n.Velocities, c.Velocities)
	return n
}

// IsValid reports whether every angle and velocity is finite.
func (c *Chain) IsValid() bool {
	for i := range c.Angles {
		if !finite(c.Angles[i]) || !finite(c.Velocities[i]) {
			return false
		}
	}
	return true
}

// Equal reports bitwise equality of both state vectors.
func (c *Chain) Equal(o *Chain) bool {
	if len(c.Angles) != len(o.Angles) || len(c.Velocities) != len(o.Velocities) {
		return false
	}
	for i := range c.Angles {
		if math.Float64bits(c.Angles[i]) != math.Float64bits(o.Angles[i]) ||
			math.Float64bits(c.Velocities[i]) != math.Float64bits(o.Velocities[i]) {
			return false
		}
	}
	return true
}

// AddLink appends a link with the given initial angle and velocity.
func (c *Chain) AddLink(angle, velocity float64) {
	c.Angles = append(c.Angles, angle)
	c.Velocities = append(c.Velocities, velocity)
	tracer().Debugf("chain: added link %d", len(c.Angles)-1)
}

// RemoveLink drops the last link. A chain never shrinks below one link.
func (c *Chain) RemoveLink() error {
	if len(c.Angles) <= 1 {
		return ErrLastLink
	}
	n := len(c.Angles) - 1
	c.Angles = c.Angles[:n]
	c.Velocities = c.Velocities[:n]
	tracer().Debugf("chain: removed link %d", n)
	return nil
}

// Reset replaces the state with copies of angles and velocities.
func (c *Chain) Reset(angles, velocities []float64) error {
	if len(angles) == 0 {
		return ErrEmptyChain
	}
	if len(angles) != len(velocities) {
		return ErrLengthMismatch
	}
	c.Angles = append(c.Angles[:0], angles...)
	c.Velocities = append(c.Velocities[:0], velocities...)
	return nil
}

// ValidateLinks checks that links describes an n-link chain with positive
// lengths and masses in [MinMass, MaxMass].
func ValidateLinks(links []Link, n int) error {
	if len(links) != n {
		return ErrLinkCount
	}
	for i, l := range links {
		if !(l.Length > 0) || !finite(l.Length) {
			return &LinkError{Index: i, Wrapped: ErrLength}
		}
		if l.Mass < MinMass || l.Mass > MaxMass || math.IsNaN(l.Mass) {
			return &LinkError{Index: i, Wrapped: ErrMass}
		}
	}
	return nil
}

// Lengths returns the link lengths in chain order.
func Lengths(links []Link) []float64 {
	out := make([]float64, len(links))
	for i, l := range links {
		out[i] = l.Length
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
