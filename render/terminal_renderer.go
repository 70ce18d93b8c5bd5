package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clockgrid/grid"
)

// Hand lengths relative to a face radius, after the stroke ratios of the
// snapshot renderer (hour 4/6, minute 5/6)
const (
	hourHandRatio   = 4.0 / 6.0
	minuteHandRatio = 5.0 / 6.0
)

const tooSmallMessage = "terminal too small"

// Renderer consumes composed frames
type Renderer interface {
	Render(g grid.Grid) error
}

// TerminalRenderer draws each clock as a braille dot face on a tcell screen
type TerminalRenderer struct {
	screen  tcell.Screen
	palette Palette

	width, height int

	// Cached for the current screen size and grid shape
	layout terminalLayout
	rings  *Canvas
	hands  *Canvas
}

// terminalLayout places a rows x cols field of faces on the screen
type terminalLayout struct {
	rows, cols int
	dots       int // face size in dots, a multiple of 4
	originX    int
	originY    int
}

func (l terminalLayout) cellCols() int { return l.dots / 2 }
func (l terminalLayout) cellRows() int { return l.dots / 4 }

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen, palette Palette) *TerminalRenderer {
	r := &TerminalRenderer{
		screen:  screen,
		palette: palette,
	}
	r.width, r.height = screen.Size()
	return r
}

// Resize picks up the current screen size; the next Render re-lays out
func (r *TerminalRenderer) Resize() {
	w, h := r.screen.Size()
	if w != r.width || h != r.height {
		r.width, r.height = w, h
		r.layout = terminalLayout{}
	}
}

// fitLayout sizes faces to the largest dot size the screen can hold
// Returns false when even the smallest face does not fit
func fitLayout(width, height, rows, cols int) (terminalLayout, bool) {
	if rows <= 0 || cols <= 0 {
		return terminalLayout{}, false
	}

	// A face of d dots spans d/2 columns and d/4 rows
	dots := min(2*(width/cols), 4*(height/rows))
	dots -= dots % 4
	if dots < 4 {
		return terminalLayout{}, false
	}

	l := terminalLayout{rows: rows, cols: cols, dots: dots}
	l.originX = (width - cols*l.cellCols()) / 2
	l.originY = (height - rows*l.cellRows()) / 2
	return l, true
}

func (r *TerminalRenderer) relayout(rows, cols int) bool {
	if r.layout.dots != 0 && r.layout.rows == rows && r.layout.cols == cols {
		return true
	}

	l, ok := fitLayout(r.width, r.height, rows, cols)
	if !ok {
		r.layout = terminalLayout{}
		return false
	}
	r.layout = l

	r.hands = NewCanvas(cols*l.cellCols(), rows*l.cellRows())
	r.rings = NewCanvas(cols*l.cellCols(), rows*l.cellRows())

	radius := float64(l.dots)/2 - 1
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			cx, cy := l.center(i, j)
			r.rings.Circle(cx, cy, radius)
		}
	}
	return true
}

// center returns the dot coordinates of face (i, j) relative to the canvas
func (l terminalLayout) center(i, j int) (float64, float64) {
	half := float64(l.dots)/2 - 0.5
	return float64(j*l.dots) + half, float64(i*l.dots) + half
}

// Render draws g and shows the screen
func (r *TerminalRenderer) Render(g grid.Grid) error {
	bg := tcell.StyleDefault.Background(tcellColor(r.palette.Background))
	r.screen.Fill(' ', bg)

	if !r.relayout(g.Rows(), g.Cols()) {
		r.drawTooSmall(bg)
		r.screen.Show()
		return nil
	}

	l := r.layout
	radius := float64(l.dots)/2 - 1
	r.hands.Clear()
	for i, row := range g {
		for j, value := range row {
			cx, cy := l.center(i, j)
			hourDeg, minuteDeg := HandAngles(value)

			x, y := handTip(cx, cy, radius*hourHandRatio, hourDeg)
			r.hands.Line(cx, cy, x, y)
			x, y = handTip(cx, cy, radius*minuteHandRatio, minuteDeg)
			r.hands.Line(cx, cy, x, y)
		}
	}

	handStyle := bg.Foreground(tcellColor(r.palette.Hand))
	ringStyle := bg.Foreground(tcellColor(r.palette.Ring))
	for row := 0; row < l.rows*l.cellRows(); row++ {
		for col := 0; col < l.cols*l.cellCols(); col++ {
			x, y := l.originX+col, l.originY+row
			if ch := r.hands.Cell(col, row); ch != 0 {
				r.screen.SetContent(x, y, ch, nil, handStyle)
			} else if ch := r.rings.Cell(col, row); ch != 0 {
				r.screen.SetContent(x, y, ch, nil, ringStyle)
			}
		}
	}

	r.screen.Show()
	return nil
}

func (r *TerminalRenderer) drawTooSmall(style tcell.Style) {
	x := max((r.width-len(tooSmallMessage))/2, 0)
	y := r.height / 2
	for i, ch := range tooSmallMessage {
		r.screen.SetContent(x+i, y, ch, nil, style.Foreground(tcellColor(r.palette.Hand)))
	}
}
