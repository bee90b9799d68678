package termrenderer

import (
	"testing"

	"github.com/ashfall-tactics/tactica/render"
)

func TestFillPathFillsInteriorPixels(t *testing.T) {
	r := New(10, 10)
	r.FillPath([]render.Point{
		{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 8, Y: 8}, {X: 2, Y: 8},
	}, render.Color{R: 255, A: 255})

	c := r.buf.NRGBAAt(5, 5)
	if c.A == 0 {
		t.Fatalf("expected interior pixel (5,5) to be filled, got %+v", c)
	}

	c = r.buf.NRGBAAt(0, 0)
	if c.A != 0 {
		t.Fatalf("expected exterior pixel (0,0) to stay untouched, got %+v", c)
	}
}

func TestClearResetsBuffer(t *testing.T) {
	r := New(4, 4)
	r.FillPath([]render.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 3}}, render.Color{R: 255, A: 255})
	r.Clear()

	c := r.buf.NRGBAAt(1, 1)
	if c.A != 0 {
		t.Fatalf("expected buffer cleared, got %+v", c)
	}
}

func TestStrokePathDrawsBetweenEndpoints(t *testing.T) {
	r := New(10, 10)
	r.StrokePath([]render.Point{{X: 0, Y: 5}, {X: 9, Y: 5}}, render.Color{G: 255, A: 255}, render.StrokeProperties{Width: 1})

	c := r.buf.NRGBAAt(5, 5)
	if c.A == 0 {
		t.Fatalf("expected a pixel along the stroked line to be set")
	}
}

func TestSizeReturnsConstructedDimensions(t *testing.T) {
	r := New(100, 50)
	w, h := r.Size()
	if w != 100 || h != 50 {
		t.Fatalf("expected (100, 50), got (%v, %v)", w, h)
	}
}
