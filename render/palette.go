package render

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/clockgrid/config"
)

// ringStrength pulls the ring toward the background so hands dominate
const ringStrength = 0.6

// Palette holds the resolved drawing colors
type Palette struct {
	Hand       colorful.Color
	Ring       colorful.Color
	Background colorful.Color
}

// NewPalette parses the configured hex colors
func NewPalette(cs config.ColorSettings) (Palette, error) {
	hand, err := colorful.Hex(cs.Hand)
	if err != nil {
		return Palette{}, fmt.Errorf("hand color: %w", err)
	}
	ring, err := colorful.Hex(cs.Ring)
	if err != nil {
		return Palette{}, fmt.Errorf("ring color: %w", err)
	}
	bg, err := colorful.Hex(cs.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("background color: %w", err)
	}

	return Palette{
		Hand:       hand,
		Ring:       bg.BlendLab(ring, ringStrength).Clamped(),
		Background: bg,
	}, nil
}

// MustPalette is like NewPalette but panics on an invalid color
func MustPalette(cs config.ColorSettings) Palette {
	p, err := NewPalette(cs)
	if err != nil {
		panic(err)
	}
	return p
}

// DefaultPalette is the palette of the default settings
func DefaultPalette() Palette {
	return MustPalette(config.Default().Colors)
}

// TerminalPalette is the dark-terminal variant: hand and background swap
// lightness so hands stay legible on a dark screen
func (p Palette) TerminalPalette() Palette {
	h, c, l := p.Hand.Hcl()
	bh, bc, bl := p.Background.Hcl()
	if l >= bl {
		return p
	}
	return Palette{
		Hand:       colorful.Hcl(h, c, bl).Clamped(),
		Ring:       colorful.Hcl(bh, bc, l).BlendLab(p.Ring, 1-ringStrength).Clamped(),
		Background: colorful.Hcl(bh, bc, l).Clamped(),
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
