package chain

import "math"

// Params are the process-wide integration parameters.
type Params struct {
	Gravity float64
	Dt      float64
}

// Step advances every link of c by one increment of dt. links must hold at
// least c.Len() entries; extra entries are ignored.
func Step(c *Chain, links []Link, gravity, dt float64) {
	for i := range c.Angles {
		c.Angles[i] += c.Velocities[i] * dt
		c.Velocities[i] -= (gravity / links[i].Length) * math.Sin(c.Angles[i]) * dt
	}
}

// StepN calls Step k times.
func StepN(c *Chain, links []Link, p Params, k int) {
	for ; k > 0; k-- {
		Step(c, links, p.Gravity, p.Dt)
	}
}
