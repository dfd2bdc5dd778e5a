package geometry

// Viewport is the terminal area a frame is rendered into.
type Viewport struct {
	Width, Height int
	Margin        int
	Center        Cell
	// Extent is the usable half-span in cells.
	Extent int
}

// NewViewport derives center and extent for a width x height terminal.
// Terminal cells are about twice as tall as wide, so the width is halved
// before it is compared with the height.
func NewViewport(width, height, margin int) Viewport {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if margin < 0 {
		margin = 0
	}
	span := width / 2
	if height < span {
		span = height
	}
	extent := span/2 - margin
	if extent < 0 {
		extent = 0
	}
	return Viewport{
		Width:  width,
		Height: height,
		Margin: margin,
		Center: Cell{Col: width / 2, Row: height / 2},
		Extent: extent,
	}
}
