package raster

import "github.com/san-kum/nlink/internal/geometry"

// DrawLine paints the cells between from and to using Bresenham's algorithm.
// Both endpoints are painted and every cell is painted exactly once.
func DrawLine(sink Sink, from, to geometry.Cell, st Style) {
	x, y := from.Col, from.Row
	dx := absInt(to.Col - x)
	dy := -absInt(to.Row - y)
	sx := -1
	if x < to.Col {
		sx = 1
	}
	sy := -1
	if y < to.Row {
		sy = 1
	}
	err := dx + dy

	for {
		sink.Paint(x, y, st)
		if x == to.Col && y == to.Row {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			if x == to.Col {
				return
			}
			err += dy
			x += sx
		}
		if e2 <= dx {
			if y == to.Row {
				return
			}
			err += dx
			y += sy
		}
	}
}

// DrawCircle paints the outline of a circle using the midpoint algorithm and
// eight-way symmetry. Cells on the symmetry axes may be painted more than
// once. A negative radius paints nothing.
func DrawCircle(sink Sink, center geometry.Cell, radius int, st Style) {
	if radius < 0 {
		return
	}
	cx, cy := center.Col, center.Row
	sx, sy := 0, radius
	p := 3 - 2*radius
	for sx <= sy {
		sink.Paint(cx+sx, cy+sy, st)
		sink.Paint(cx-sx, cy+sy, st)
		sink.Paint(cx+sx, cy-sy, st)
		sink.Paint(cx-sx, cy-sy, st)
		sink.Paint(cx+sy, cy+sx, st)
		sink.Paint(cx-sy, cy+sx, st)
		sink.Paint(cx+sy, cy-sx, st)
		sink.Paint(cx-sy, cy-sx, st)
		sx++
		if p > 0 {
			sy--
			p += 4*(sx-sy) + 10
		} else {
			p += 4*sx + 6
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
