// Package raster draws lines and circles as discrete terminal cells.
//
// Drawing routines emit paint operations to a [Sink] and perform no I/O, so
// the same code feeds the tcell screen and the in-memory [Grid] used by the
// Bubble Tea frontend and tests.
//
// # Small circles
//
// [DrawCircle] uses the integer midpoint scheme without a minimum radius.
// Radius 0 paints only the centre and radius 1 paints the four axis
// neighbours without the diagonals; radii up to about 2 look sparse. This is
// an accepted artifact of whole-cell rendering.
package raster
