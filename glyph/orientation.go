package glyph

// Orientation classifies the 2x2 pixel neighborhood around a glyph corner
type Orientation uint8

const (
	Empty Orientation = iota
	Horizontal
	Vertical
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

var orientationNames = [...]string{
	Empty:       "empty",
	Horizontal:  "horizontal",
	Vertical:    "vertical",
	TopLeft:     "top-left",
	TopRight:    "top-right",
	BottomLeft:  "bottom-left",
	BottomRight: "bottom-right",
}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return "unknown"
}

// hoursByOrientation are hand positions chosen so neighboring hands trace
// the edge passing through the corner
var hoursByOrientation = [...]float64{
	Empty:       0,
	Horizontal:  9.25,
	Vertical:    6,
	TopLeft:     6.25,
	TopRight:    5.75,
	BottomLeft:  3,
	BottomRight: 9,
}

// Hours returns the canonical hour-hand position for the orientation
func (o Orientation) Hours() float64 {
	if int(o) < len(hoursByOrientation) {
		return hoursByOrientation[o]
	}
	return 0
}

// Classify inspects the four pixels touching a corner
//
//	tl | tr
//	---+---
//	bl | br
//
// Two set pixels form a straight edge. One or three set pixels form a bend,
// named after the minority pixel: the quadrant that differs from the others.
func Classify(tl, tr, bl, br uint8) Orientation {
	switch tl + tr + bl + br {
	case 2:
		if br == tr {
			return Vertical
		}
		return Horizontal
	case 1:
		return bend(1, tl, tr, bl, br)
	case 3:
		return bend(0, tl, tr, bl, br)
	default:
		return Empty
	}
}

// bend locates the minority pixel; checked bottom-right first
func bend(minority, tl, tr, bl, br uint8) Orientation {
	switch minority {
	case br:
		return TopLeft
	case tr:
		return BottomLeft
	case bl:
		return TopRight
	case tl:
		return BottomRight
	}
	return Empty
}
