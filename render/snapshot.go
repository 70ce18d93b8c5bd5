package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/lixenwraith/clockgrid/grid"
)

// capSegments approximates a round line cap
const capSegments = 12

// SnapshotOptions size the still image
type SnapshotOptions struct {
	// Radius of each face in pixels before fitting
	Radius float64
	// MaxWidth and MaxHeight bound the output; the image is scaled down to fit
	MaxWidth, MaxHeight int
	Palette             Palette
}

// SnapshotSize returns the pixel size and face radius after fitting
func SnapshotSize(rows, cols int, opts SnapshotOptions) (int, int, float64) {
	radius := opts.Radius
	w := 2 * radius * float64(cols)
	h := 2 * radius * float64(rows)

	scale := 1.0
	if opts.MaxWidth > 0 && w > float64(opts.MaxWidth) {
		scale = float64(opts.MaxWidth) / w
	}
	if opts.MaxHeight > 0 && h*scale > float64(opts.MaxHeight) {
		scale = float64(opts.MaxHeight) / h
	}

	radius *= scale
	return int(math.Round(w * scale)), int(math.Round(h * scale)), radius
}

// Rasterize draws g as an image of analog faces
func Rasterize(g grid.Grid, opts SnapshotOptions) *image.RGBA {
	w, h, radius := SnapshotSize(g.Rows(), g.Cols(), opts)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(rgba(opts.Palette.Background)), image.Point{}, draw.Src)

	ring := image.NewUniform(rgba(opts.Palette.Ring))
	hand := image.NewUniform(rgba(opts.Palette.Hand))

	ringWidth := radius / 12
	handWidth := radius / 6
	z := vector.NewRasterizer(w, h)

	for i, row := range g {
		for j, value := range row {
			cx := radius * float64(2*j+1)
			cy := radius * float64(2*i+1)

			z.Reset(w, h)
			annulus(z, cx, cy, radius-ringWidth, radius)
			z.Draw(img, img.Bounds(), ring, image.Point{})

			hourDeg, minuteDeg := HandAngles(value)
			z.Reset(w, h)
			stroke(z, cx, cy, 4*handWidth, hourDeg, handWidth)
			z.Draw(img, img.Bounds(), hand, image.Point{})

			z.Reset(w, h)
			stroke(z, cx, cy, 5*handWidth, minuteDeg, handWidth)
			z.Draw(img, img.Bounds(), hand, image.Point{})
		}
	}
	return img
}

// Snapshot encodes g as a PNG
func Snapshot(w io.Writer, g grid.Grid, opts SnapshotOptions) error {
	if err := png.Encode(w, Rasterize(g, opts)); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// annulus adds a ring between inner and outer radii; the inner circle winds
// the opposite way so it cancels out
func annulus(z *vector.Rasterizer, cx, cy, inner, outer float64) {
	const segments = 48
	circle(z, cx, cy, outer, segments, false)
	circle(z, cx, cy, inner, segments, true)
}

func circle(z *vector.Rasterizer, cx, cy, r float64, segments int, reverse bool) {
	for k := 0; k <= segments; k++ {
		a := 2 * math.Pi * float64(k) / float64(segments)
		if reverse {
			a = -a
		}
		x, y := float32(cx+r*math.Cos(a)), float32(cy+r*math.Sin(a))
		if k == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// stroke adds a round-capped line from the center along deg
func stroke(z *vector.Rasterizer, cx, cy, length, deg, width float64) {
	tx, ty := handTip(cx, cy, length, deg)
	half := width / 2
	rad := deg * math.Pi / 180

	// Perpendicular to the hand direction (sin, -cos)
	px, py := half*math.Cos(rad), half*math.Sin(rad)

	// Half-circle around the tip, then back along the other side and around the center
	z.MoveTo(float32(cx+px), float32(cy+py))
	z.LineTo(float32(tx+px), float32(ty+py))
	capArc(z, tx, ty, half, rad, 0)
	z.LineTo(float32(cx-px), float32(cy-py))
	capArc(z, cx, cy, half, rad, math.Pi)
	z.ClosePath()
}

// capArc sweeps half a circle around (x, y) starting from the perpendicular
// offset at angle rad, rotated by phase
func capArc(z *vector.Rasterizer, x, y, r, rad, phase float64) {
	for k := 1; k <= capSegments; k++ {
		a := rad + phase - math.Pi*float64(k)/capSegments
		z.LineTo(float32(x+r*math.Cos(a)), float32(y+r*math.Sin(a)))
	}
}
