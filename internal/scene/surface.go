package scene

import "github.com/san-kum/nlink/internal/raster"

// Surface is the terminal a Driver renders into. Paint and Text must ignore
// cells outside the surface.
type Surface interface {
	raster.Sink
	Size() (width, height int)
	Clear()
	Text(col, row int, s string, st raster.Style)
	Show() error
}
