package deckicon

// Canvas geometry.
const (
	CanvasSize   = 256
	CornerRadius = 24
	LayerMargin  = 10
	TextMargin   = 20
)

// AxisMode tells how an element is placed along one axis.
type AxisMode int

const (
	// Start places the element at Distance from the top or left edge.
	Start AxisMode = iota
	// Center centers the element and then moves it by Translate.
	Center
	// End places the element at Distance from the bottom or right edge.
	End
)

func (m AxisMode) String() string {
	switch m {
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "center"
	}
}

// AxisPlacement is the placement rule of a single axis. Distance is only
// meaningful for edge placements, Translate only for centered ones.
type AxisPlacement struct {
	Mode      AxisMode
	Distance  float64
	Translate float64
}

// offset returns the coordinate of the element's leading edge.
func (a AxisPlacement) offset(canvas, size float64) float64 {
	switch a.Mode {
	case Start:
		return a.Distance
	case End:
		return canvas - a.Distance - size
	default:
		return (canvas-size)/2 + a.Translate
	}
}

// Placement holds the independent vertical and horizontal rules of an element.
type Placement struct {
	Vertical   AxisPlacement
	Horizontal AxisPlacement
}

// Origin returns the top-left corner of a w×h element placed on a square canvas.
func (p Placement) Origin(canvas, w, h float64) (x, y float64) {
	return p.Horizontal.offset(canvas, w), p.Vertical.offset(canvas, h)
}

// ResolveLayer resolves the placement of an icon layer. Edge anchors keep
// LayerMargin from the edge, with the offsets added towards the inside for
// top/left and subtracted for bottom/right, so a positive offset always
// moves the element right or down. Centered axes are translated by the offset.
func ResolveLayer(a Anchor, offsetX, offsetY float64) Placement {
	v, h := a.split()
	return Placement{
		Vertical:   resolveAxis(v, "top", "bottom", LayerMargin, offsetY),
		Horizontal: resolveAxis(h, "left", "right", LayerMargin, offsetX),
	}
}

// ResolveText resolves the placement of the text block. Text uses a larger
// margin and takes no offsets.
func ResolveText(a Anchor) Placement {
	v, h := a.split()
	return Placement{
		Vertical:   resolveAxis(v, "top", "bottom", TextMargin, 0),
		Horizontal: resolveAxis(h, "left", "right", TextMargin, 0),
	}
}

func resolveAxis(side, start, end string, margin, offset float64) AxisPlacement {
	switch side {
	case start:
		return AxisPlacement{Mode: Start, Distance: margin + offset}
	case end:
		return AxisPlacement{Mode: End, Distance: margin - offset}
	default:
		return AxisPlacement{Mode: Center, Translate: offset}
	}
}
