package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/clockgrid/clock"
	"github.com/lixenwraith/clockgrid/config"
	"github.com/lixenwraith/clockgrid/grid"
)

func TestHandAngles(t *testing.T) {
	tests := []struct {
		value        float64
		hour, minute float64
	}{
		{0, 0, 0},
		{3, 90, 0},
		{6, 180, 0},
		{9.25, 277.5, 90},
		{12, 0, 0},
		{15.5, 105, 180},
		{-0.25, 352.5, 270},
	}
	for _, tt := range tests {
		h, m := HandAngles(tt.value)
		if math.Abs(h-tt.hour) > 1e-9 || math.Abs(m-tt.minute) > 1e-9 {
			t.Errorf("HandAngles(%v) = (%v, %v), want (%v, %v)", tt.value, h, m, tt.hour, tt.minute)
		}
	}
}

func TestCanvasDots(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Size(); w != 4 || h != 4 {
		t.Fatalf("Size() = %dx%d, want 4x4", w, h)
	}

	if c.Cell(0, 0) != 0 {
		t.Error("empty cell should be 0")
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Cell(0, 0); got != 0x2800+0x01+0x80 {
		t.Errorf("Cell(0,0) = %U, want %U", got, rune(0x2881))
	}
	if !c.Get(1, 3) || c.Get(1, 2) {
		t.Error("Get disagrees with Set")
	}

	// Off-canvas writes are dropped
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	c.Clear()
	if c.Cell(0, 0) != 0 {
		t.Error("Clear left dots behind")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Line(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.Get(i, i) {
			t.Errorf("diagonal missing dot %d", i)
		}
	}

	c.Clear()
	c.Line(3, 6, 3, 1)
	for y := 1; y <= 6; y++ {
		if !c.Get(3, y) {
			t.Errorf("vertical line missing dot at y=%d", y)
		}
	}
	if c.Get(3, 0) || c.Get(3, 7) {
		t.Error("vertical line overshot")
	}
}

func TestFitLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantDots      int
		wantOK        bool
	}{
		{"standard terminal", 80, 24, 8, true},
		{"tall terminal", 80, 100, 8, true},
		{"wide terminal", 400, 24, 12, true},
		{"minimum", 40, 8, 4, true},
		{"too narrow", 39, 24, 0, false},
		{"too short", 80, 7, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, ok := fitLayout(tt.width, tt.height, clock.Rows, clock.Cols)
			if ok != tt.wantOK {
				t.Fatalf("fitLayout ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if l.dots != tt.wantDots {
				t.Errorf("dots = %d, want %d", l.dots, tt.wantDots)
			}
			if l.originX < 0 || l.originX+clock.Cols*l.cellCols() > tt.width {
				t.Errorf("layout overflows width: origin %d", l.originX)
			}
			if l.originY < 0 || l.originY+clock.Rows*l.cellRows() > tt.height {
				t.Errorf("layout overflows height: origin %d", l.originY)
			}
		})
	}
}

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	return screen
}

func TestTerminalRendererDrawsHands(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	palette := DefaultPalette()
	r := NewTerminalRenderer(screen, palette)

	if err := r.Render(clock.NewFrame()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Blank cells point at twelve: the first face's hand runs up from its center
	l := r.layout
	x, y := l.originX+2, l.originY
	ch, _, style, _ := screen.GetContent(x, y)
	if ch < 0x2800 || ch > 0x28ff {
		t.Fatalf("cell (%d,%d) = %q, want a braille hand", x, y, ch)
	}
	fg, _, _ := style.Decompose()
	if fg != tcellColor(palette.Hand) {
		t.Errorf("hand drawn in %v, want %v", fg, tcellColor(palette.Hand))
	}

	braille := 0
	for row := 0; row < 24; row++ {
		for col := 0; col < 80; col++ {
			if c, _, _, _ := screen.GetContent(col, row); c >= 0x2800 && c <= 0x28ff {
				braille++
			}
		}
	}
	if braille < clock.Rows*clock.Cols {
		t.Errorf("only %d braille cells for %d faces", braille, clock.Rows*clock.Cols)
	}
}

func TestTerminalRendererFrameChangesScreen(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, DefaultPalette())

	snapshot := func() []rune {
		var out []rune
		for row := 0; row < 24; row++ {
			for col := 0; col < 80; col++ {
				c, _, _, _ := screen.GetContent(col, row)
				out = append(out, c)
			}
		}
		return out
	}

	r.Render(clock.NewFrame())
	blank := snapshot()

	g := clock.NewFrame()
	g[3][3] = 6
	r.Render(g)
	changed := snapshot()

	if string(blank) == string(changed) {
		t.Error("moving a hand did not change the screen")
	}
}

func TestTerminalRendererTooSmall(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, DefaultPalette())

	screen.SetSize(30, 5)
	r.Resize()
	if err := r.Render(clock.NewFrame()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var line []rune
	for col := 0; col < 30; col++ {
		c, _, _, _ := screen.GetContent(col, 2)
		line = append(line, c)
	}
	if !bytes.Contains([]byte(string(line)), []byte(tooSmallMessage)) {
		t.Errorf("row 2 = %q, want the size warning", string(line))
	}

	// Growing back restores the faces
	screen.SetSize(80, 24)
	r.Resize()
	r.Render(clock.NewFrame())
	if r.layout.dots == 0 {
		t.Error("layout not restored after resize")
	}
}

func TestPalette(t *testing.T) {
	p, err := NewPalette(config.Default().Colors)
	if err != nil {
		t.Fatalf("NewPalette failed: %v", err)
	}
	if r, g, b := p.Hand.RGB255(); r != 0x33 || g != 0x33 || b != 0x33 {
		t.Errorf("hand = %d,%d,%d", r, g, b)
	}

	if _, err := NewPalette(config.ColorSettings{Hand: "nope", Ring: "#fff", Background: "#000"}); err == nil {
		t.Error("NewPalette accepted an invalid color")
	}

	// Dark hands on light paper become light hands on a dark screen
	dark := p.TerminalPalette()
	_, _, handL := dark.Hand.Hcl()
	_, _, bgL := dark.Background.Hcl()
	if handL <= bgL {
		t.Errorf("terminal palette hand lightness %v not above background %v", handL, bgL)
	}

	// Already light-on-dark palettes are kept
	light, _ := NewPalette(config.ColorSettings{Hand: "#ffffff", Ring: "#444444", Background: "#000000"})
	if light.TerminalPalette() != light {
		t.Error("TerminalPalette changed a light-on-dark palette")
	}
}

func TestMustPalette(t *testing.T) {
	if got := MustPalette(config.Default().Colors); got != DefaultPalette() {
		t.Error("MustPalette disagrees with DefaultPalette")
	}

	defer func() {
		if recover() == nil {
			t.Error("MustPalette did not panic on an invalid color")
		}
	}()
	MustPalette(config.ColorSettings{Hand: "#333333", Ring: "#eeeeee", Background: "white"})
}

func TestSnapshotSize(t *testing.T) {
	tests := []struct {
		name         string
		opts         SnapshotOptions
		wantW, wantH int
	}{
		{"unbounded", SnapshotOptions{Radius: 30}, 1200, 480},
		{"thumbnail", SnapshotOptions{Radius: 30, MaxWidth: 640, MaxHeight: 400}, 640, 256},
		{"height bound", SnapshotOptions{Radius: 30, MaxWidth: 5000, MaxHeight: 240}, 600, 240},
		{"already fits", SnapshotOptions{Radius: 10, MaxWidth: 640, MaxHeight: 400}, 400, 160},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, _ := SnapshotSize(clock.Rows, clock.Cols, tt.opts)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("SnapshotSize = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func closeTo(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestRasterizeSingleFace(t *testing.T) {
	palette := DefaultPalette()
	img := Rasterize(grid.Grid{{0}}, SnapshotOptions{Radius: 30, Palette: palette})

	if b := img.Bounds(); b.Dx() != 60 || b.Dy() != 60 {
		t.Fatalf("image is %v, want 60x60", b)
	}

	check := func(x, y int, want rgb8, label string) {
		t.Helper()
		c := img.RGBAAt(x, y)
		if !closeTo(c.R, want.r) || !closeTo(c.G, want.g) || !closeTo(c.B, want.b) {
			t.Errorf("%s pixel (%d,%d) = %v, want %v", label, x, y, c, want)
		}
	}

	check(0, 0, rgbOf(palette.Background), "corner")
	check(30, 15, rgbOf(palette.Hand), "hand")
	check(30, 1, rgbOf(palette.Ring), "ring")
	check(30, 45, rgbOf(palette.Background), "below center")
}

type rgb8 struct{ r, g, b uint8 }

func rgbOf(c interface{ RGB255() (uint8, uint8, uint8) }) rgb8 {
	r, g, b := c.RGB255()
	return rgb8{r, g, b}
}

func TestSnapshotEncodesPNG(t *testing.T) {
	var buf bytes.Buffer
	opts := SnapshotOptions{Radius: 30, MaxWidth: 640, MaxHeight: 400, Palette: DefaultPalette()}
	if err := Snapshot(&buf, clock.Compose(time.Date(2020, 1, 1, 12, 24, 0, 0, time.UTC)), opts); err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 256 {
		t.Errorf("snapshot is %v, want 640x256", b)
	}
}
