package render

import (
	"image"
	"testing"
)

type recordingGraphics struct {
	calls []string
}

func (g *recordingGraphics) Clear()                  {}
func (g *recordingGraphics) Size() (float64, float64) { return 0, 0 }
func (g *recordingGraphics) FillPath([]Point, Color)  { g.calls = append(g.calls, "fill") }
func (g *recordingGraphics) StrokePath([]Point, Color, StrokeProperties) {
	g.calls = append(g.calls, "stroke")
}
func (g *recordingGraphics) DrawText(float64, float64, string, float64, Color) {
	g.calls = append(g.calls, "text")
}
func (g *recordingGraphics) DrawImage(float64, float64, float64, float64, image.Image) {
	g.calls = append(g.calls, "image")
}
func (g *recordingGraphics) Present() error { return nil }

func TestDrawListReplayIssuesCommandsInOrder(t *testing.T) {
	var list DrawList
	list.FillPath([]Point{{X: 0, Y: 0}}, Color{R: 255})
	list.Text(1, 1, "hi", 12, Color{B: 255})
	list.DrawImage(0, 0, 1, 1, image.NewRGBA(image.Rect(0, 0, 1, 1)))

	g := &recordingGraphics{}
	list.Replay(g)

	want := []string{"fill", "text", "image"}
	if len(g.calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, g.calls)
	}
	for i, c := range want {
		if g.calls[i] != c {
			t.Fatalf("expected %v, got %v", want, g.calls)
		}
	}
}

func TestDrawListQueuesCommandsInOrder(t *testing.T) {
	var list DrawList
	list.FillPath([]Point{{X: 0, Y: 0}}, Color{R: 255})
	list.StrokePath([]Point{{X: 0, Y: 0}}, Color{G: 255}, StrokeProperties{Width: 2})
	list.Text(1, 1, "hi", 12, Color{B: 255})

	if len(list.Commands) != 3 {
		t.Fatalf("expected 3 queued commands, got %d", len(list.Commands))
	}
	if list.Commands[0].Kind != CmdFillPath || list.Commands[1].Kind != CmdStrokePath || list.Commands[2].Kind != CmdText {
		t.Fatalf("unexpected command kinds: %+v", list.Commands)
	}
}
