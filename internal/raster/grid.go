package raster

import "strings"

// Cell is one painted terminal cell.
type Cell struct {
	Rune  rune
	Style Style
	Set   bool
}

// Grid is an in-memory Sink of Width x Height cells.
type Grid struct {
	Width, Height int
	cells         [][]Cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{}
	g.Resize(w, h)
	return g
}

// Resize discards the contents and reallocates for w x h cells.
func (g *Grid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.Width, g.Height = w, h
	g.cells = make([][]Cell, h)
	for i := range g.cells {
		g.cells[i] = make([]Cell, w)
	}
}

func (g *Grid) Size() (int, int) { return g.Width, g.Height }

func (g *Grid) inBounds(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.Width && row < g.Height
}

// Paint marks the cell at (col, row) with a block glyph. Out-of-bounds cells
// are dropped.
func (g *Grid) Paint(col, row int, st Style) {
	g.SetRune(col, row, Block, st)
}

// SetRune stores r at (col, row). Out-of-bounds cells are dropped.
func (g *Grid) SetRune(col, row int, r rune, st Style) {
	if !g.inBounds(col, row) {
		return
	}
	g.cells[row][col] = Cell{Rune: r, Style: st, Set: true}
}

// Text writes s starting at (col, row), one rune per cell, clipped to the grid.
func (g *Grid) Text(col, row int, s string, st Style) {
	for _, r := range s {
		g.SetRune(col, row, r, st)
		col++
	}
}

// Clear resets every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		for j := range g.cells[i] {
			g.cells[i][j] = Cell{}
		}
	}
}

// At returns the cell at (col, row); out-of-bounds reads return a zero Cell.
func (g *Grid) At(col, row int) Cell {
	if !g.inBounds(col, row) {
		return Cell{}
	}
	return g.cells[row][col]
}

// Count returns the number of painted cells.
func (g *Grid) Count() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c.Set {
				n++
			}
		}
	}
	return n
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []Cell {
	if y < 0 || y >= g.Height {
		return nil
	}
	out := make([]Cell, g.Width)
	copy(out, g.cells[y])
	return out
}

// String renders the grid as plain text, one line per row, unpainted cells
// as spaces.
func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.cells {
		for _, c := range row {
			if c.Set {
				b.WriteRune(c.Rune)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
