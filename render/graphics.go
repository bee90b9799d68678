// Package render defines the abstract drawing surface the simulation
// kernel draws onto; the terminal back-end that implements it is in the
// render/termrenderer subpackage. The
// kernel (anim, turn, world) never imports this package; a caller
// assembles a DrawList from kernel state and hands it to a Graphics
// implementation each frame.
package render

import "image"

// Point is a floating-point drawing coordinate, distinct from the
// integer tile coordinates tiles.Point and pathfind.Point use — a draw
// call operates in pixel space, not tile space.
type Point struct{ X, Y float64 }

// Color is a straight (non-premultiplied) RGBA color in [0, 255].
type Color struct{ R, G, B, A uint8 }

// StrokeProperties configures how StrokePath draws its outline.
type StrokeProperties struct {
	Width       float64
	LineCap     string
	LineJoin    string
	DashPattern []float64
}

// Graphics is a drawable surface: a PNG buffer, a terminal cell grid,
// or (if this engine grew a GUI front end) an HTML canvas. One concrete
// implementation, termrenderer.Renderer, lives in render/termrenderer;
// anything consuming draw lists only needs this interface.
type Graphics interface {
	Clear()
	Size() (width, height float64)
	FillPath(points []Point, fillColor Color)
	StrokePath(points []Point, strokeColor Color, props StrokeProperties)
	DrawText(x, y float64, text string, fontSize float64, textColor Color)
	DrawImage(x, y, width, height float64, img image.Image)
	// Present flushes whatever's been drawn this frame to the real
	// output device (a terminal write, a canvas swap).
	Present() error
}

// DrawCommandKind discriminates one entry in a DrawList.
type DrawCommandKind int

const (
	CmdFillPath DrawCommandKind = iota
	CmdStrokePath
	CmdText
	CmdImage
)

// DrawCommand is one serialisable draw operation. A DrawList batches a
// frame's worth of these so the kernel can describe what to draw
// without depending on a concrete Graphics implementation.
type DrawCommand struct {
	Kind   DrawCommandKind
	Points []Point
	Color  Color
	Stroke StrokeProperties

	X, Y, Width, Height float64
	Text                string
	FontSize            float64
	Image               image.Image
}

// DrawList is one frame's batch of draw commands, issued in order.
type DrawList struct {
	Commands []DrawCommand
}

// FillPath appends a fill command.
func (d *DrawList) FillPath(points []Point, color Color) {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdFillPath, Points: points, Color: color})
}

// StrokePath appends a stroke command.
func (d *DrawList) StrokePath(points []Point, color Color, stroke StrokeProperties) {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdStrokePath, Points: points, Color: color, Stroke: stroke})
}

// Text appends a text command.
func (d *DrawList) Text(x, y float64, text string, fontSize float64, color Color) {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdText, X: x, Y: y, Text: text, FontSize: fontSize, Color: color})
}

// DrawImage appends an image-blit command.
func (d *DrawList) DrawImage(x, y, width, height float64, img image.Image) {
	d.Commands = append(d.Commands, DrawCommand{Kind: CmdImage, X: x, Y: y, Width: width, Height: height, Image: img})
}

// Replay issues every command in the list against g, in order.
func (d *DrawList) Replay(g Graphics) {
	for _, cmd := range d.Commands {
		switch cmd.Kind {
		case CmdFillPath:
			g.FillPath(cmd.Points, cmd.Color)
		case CmdStrokePath:
			g.StrokePath(cmd.Points, cmd.Color, cmd.Stroke)
		case CmdText:
			g.DrawText(cmd.X, cmd.Y, cmd.Text, cmd.FontSize, cmd.Color)
		case CmdImage:
			g.DrawImage(cmd.X, cmd.Y, cmd.Width, cmd.Height, cmd.Image)
		}
	}
}
