// Package geometry converts chain angles to physical joint positions and
// physical positions to terminal cells.
//
// Physical space has the pivot at the origin with y decreasing along the
// hanging direction of an unrotated link. Cell space is the terminal grid:
// column grows rightwards, row grows downwards. No clamping is applied in
// either direction; callers hand off-screen cells to a sink that drops them.
package geometry

import "math"

// Point is a position in physical space.
type Point struct {
	X, Y float64
}

// Cell is a terminal cell coordinate.
type Cell struct {
	Col, Row int
}

// JointPosition returns the tip of link upTo, summing the contributions of
// links 0..upTo in order.
func JointPosition(lengths, angles []float64, upTo int) Point {
	var p Point
	for i := 0; i <= upTo; i++ {
		p.X += lengths[i] * math.Sin(angles[i])
		p.Y -= lengths[i] * math.Cos(angles[i])
	}
	return p
}

// Joints returns the tip of every link. Entry i equals JointPosition(lengths,
// angles, i) bit for bit.
func Joints(lengths, angles []float64) []Point {
	out := make([]Point, len(angles))
	var p Point
	for i := range angles {
		p.X += lengths[i] * math.Sin(angles[i])
		p.Y -= lengths[i] * math.Cos(angles[i])
		out[i] = p
	}
	return out
}

// Reach is the total length of the chain, the farthest any joint can be
// from the pivot.
func Reach(lengths []float64) float64 {
	sum := 0.0
	for _, l := range lengths {
		sum += l
	}
	return sum
}

// Scale is the cells-per-unit factor mapping reach onto extent. A chain with
// no length has scale 0.
func Scale(reach float64, extent int) float64 {
	if reach == 0 {
		return 0
	}
	return float64(extent) / reach
}

// ToCell maps p into the viewport. Rounding is half away from zero.
func ToCell(p Point, reach float64, vp Viewport) Cell {
	s := Scale(reach, vp.Extent)
	return Cell{
		Col: int(math.Round(p.X*s)) + vp.Center.Col,
		Row: int(math.Round(p.Y*s)) + vp.Center.Row,
	}
}

// ToCells maps every joint with the same scale.
func ToCells(joints []Point, reach float64, vp Viewport) []Cell {
	out := make([]Cell, len(joints))
	for i, p := range joints {
		out[i] = ToCell(p, reach, vp)
	}
	return out
}
