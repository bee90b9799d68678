// Package termrenderer implements render.Graphics by rasterising draw
// commands into an in-memory RGBA buffer and flushing that buffer to
// the terminal through github.com/blacktop/go-termimg, the teacher's
// own terminal-graphics dependency.
package termrenderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/blacktop/go-termimg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ashfall-tactics/tactica/render"
)

// Renderer rasterises a frame into an RGBA buffer, then prints it to
// the controlling terminal on Present. Single-goroutine use only — it
// owns one buffer, reused across frames.
type Renderer struct {
	buf           *image.NRGBA
	width, height int
}

var _ render.Graphics = (*Renderer)(nil)

// New creates a renderer backed by a width x height pixel buffer.
func New(width, height int) *Renderer {
	return &Renderer{
		buf:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

func (r *Renderer) Clear() {
	draw.Draw(r.buf, r.buf.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Renderer) Size() (width, height float64) {
	return float64(r.width), float64(r.height)
}

// FillPath fills the polygon described by points using an even-odd
// scanline rule. points is assumed closed (the last vertex implicitly
// connects back to the first).
func (r *Renderer) FillPath(points []render.Point, fillColor render.Color) {
	if len(points) < 3 {
		return
	}
	c := toNRGBA(fillColor)

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	startY := int(math.Floor(minY))
	endY := int(math.Ceil(maxY))
	for y := startY; y <= endY; y++ {
		xs := scanlineIntersections(points, float64(y)+0.5)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x < int(math.Floor(xs[i+1]))+1; x++ {
				r.blend(x, y, c)
			}
		}
	}
}

// scanlineIntersections returns the sorted x-coordinates where the
// polygon's edges cross horizontal line y, the standard even-odd
// polygon-fill building block.
func scanlineIntersections(points []render.Point, y float64) []float64 {
	var xs []float64
	n := len(points)
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		if (a.Y <= y && b.Y > y) || (b.Y <= y && a.Y > y) {
			t := (y - a.Y) / (b.Y - a.Y)
			xs = append(xs, a.X+t*(b.X-a.X))
		}
	}
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
	return xs
}

// StrokePath draws straight segments between consecutive points (and
// from the last point back to the first) at the stroke's width, ignoring
// DashPattern/LineCap/LineJoin — this engine's shapes are simple
// polygons and circles, not the arbitrary vector paths those
// properties exist for.
func (r *Renderer) StrokePath(points []render.Point, strokeColor render.Color, props render.StrokeProperties) {
	if len(points) < 2 {
		return
	}
	c := toNRGBA(strokeColor)
	width := props.Width
	if width < 1 {
		width = 1
	}
	for i := 0; i < len(points); i++ {
		a := points[i]
		b := points[(i+1)%len(points)]
		r.drawLine(a, b, c, width)
	}
}

func (r *Renderer) drawLine(a, b render.Point, c color.NRGBA, width float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps == 0 {
		r.blendThick(a.X, a.Y, c, width)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.blendThick(a.X+dx*t, a.Y+dy*t, c, width)
	}
}

func (r *Renderer) blendThick(x, y float64, c color.NRGBA, width float64) {
	half := int(math.Ceil(width / 2))
	cx, cy := int(x), int(y)
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			r.blend(cx+ox, cy+oy, c)
		}
	}
}

func (r *Renderer) blend(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.buf.SetNRGBA(x, y, c)
}

var textFace = basicfont.Face7x13

// DrawText renders text using x/image's built-in 7x13 bitmap font — the
// kernel never authors custom fonts, so no font file needs to ship
// alongside the binary. fontSize is accepted for interface parity with
// render.Graphics but the bitmap face is a fixed 7x13; callers wanting
// larger text should scale the whole frame instead.
func (r *Renderer) DrawText(x, y float64, text string, fontSize float64, textColor render.Color) {
	drawer := &font.Drawer{
		Dst:  r.buf,
		Src:  image.NewUniform(toNRGBA(textColor)),
		Face: textFace,
		Dot:  fixed.P(int(x), int(y)),
	}
	drawer.DrawString(text)
}

// DrawImage blits img into the buffer at (x, y), clipped to a width x
// height rectangle; img is not scaled.
func (r *Renderer) DrawImage(x, y, width, height float64, img image.Image) {
	dstRect := image.Rect(int(x), int(y), int(x+width), int(y+height))
	draw.Draw(r.buf, dstRect, img, img.Bounds().Min, draw.Over)
}

// Present prints the accumulated frame to the terminal via go-termimg,
// which picks the best-supported terminal graphics protocol (kitty,
// iTerm2, sixel) for the current session.
func (r *Renderer) Present() error {
	ti, err := termimg.FromImage(r.buf)
	if err != nil {
		return fmt.Errorf("termrenderer: convert frame: %w", err)
	}
	if err := ti.Print(); err != nil {
		return fmt.Errorf("termrenderer: print frame: %w", err)
	}
	return nil
}

func toNRGBA(c render.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
