package raster

// Style identifies what a painted cell represents. Surfaces map styles to
// colours and glyphs.
type Style uint8

const (
	Rod Style = iota
	RodSelected
	Joint
	JointSelected
	Text
	TextMuted
)

var styleNames = [...]string{"rod", "rod-selected", "joint", "joint-selected", "text", "text-muted"}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "unknown"
}

// Block is the glyph painted for rods and joints.
const Block = '█'

// Sink receives cell paint operations. Implementations ignore cells outside
// their bounds.
type Sink interface {
	Paint(col, row int, st Style)
}
