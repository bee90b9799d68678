package pathfind

import "testing"

// wallChecker treats every cell in walls as impassable; everything else
// inside the width x height grid is open.
type wallChecker struct {
	walls map[Point]bool
	friend map[Point]bool
}

func (c *wallChecker) Passable(x, y int) bool {
	return !c.walls[Point{x, y}]
}

func (c *wallChecker) InFriendSpace(x, y int) bool {
	return c.friend[Point{x, y}]
}

func newWallChecker() *wallChecker {
	return &wallChecker{walls: map[Point]bool{}, friend: map[Point]bool{}}
}

func TestFindSimpleOpenGrid(t *testing.T) {
	f := NewFinder(10, 10)
	c := newWallChecker()

	path, ok := f.Find(c, 0, 0, Destination{X: 9, Y: 9, Dist: 1.0})
	if !ok {
		t.Fatalf("expected a path")
	}
	if path[0] != (Point{0, 0}) {
		t.Fatalf("path should start at origin, got %v", path[0])
	}
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if abs(float64(dx))+abs(float64(dy)) != 1 {
			t.Fatalf("non-adjacent step %v -> %v", path[i-1], path[i])
		}
	}
}

func TestFindAroundWall(t *testing.T) {
	// 10x10 grid, wall at column x=5 for rows 0..8 (row 9 is open).
	f := NewFinder(10, 10)
	c := newWallChecker()
	for y := 0; y <= 8; y++ {
		c.walls[Point{5, y}] = true
	}

	path, ok := f.Find(c, 0, 0, Destination{X: 9, Y: 9, Dist: 1.0})
	if !ok {
		t.Fatalf("expected a path around the wall")
	}
	if len(path) != 19 {
		t.Fatalf("expected path length 19, got %d: %v", len(path), path)
	}
	foundGap := false
	for _, p := range path {
		if p.X == 5 {
			if p.Y != 9 {
				t.Fatalf("path crosses wall at non-gap cell %v", p)
			}
			foundGap = true
		}
	}
	if !foundGap {
		t.Fatalf("expected path to thread through the gap at (5,9)")
	}
}

func TestFindFullyImpassableGrid(t *testing.T) {
	f := NewFinder(5, 5)
	c := newWallChecker()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if x != 0 || y != 0 {
				c.walls[Point{x, y}] = true
			}
		}
	}

	_, ok := f.Find(c, 0, 0, Destination{X: 4, Y: 4, Dist: 0.5})
	if ok {
		t.Fatalf("expected no path on a fully impassable grid")
	}
}

func TestFindMaxPathLen(t *testing.T) {
	f := NewFinder(20, 1)
	c := newWallChecker()

	_, ok := f.Find(c, 0, 0, Destination{X: 19, Y: 0, Dist: 0.5, MaxPathLen: 5})
	if ok {
		t.Fatalf("expected max_path_len to reject a 20-cell path")
	}
}

func TestFindAlreadyArrived(t *testing.T) {
	f := NewFinder(5, 5)
	c := newWallChecker()

	_, ok := f.Find(c, 2, 2, Destination{X: 2, Y: 2, Dist: 1.0})
	if ok {
		t.Fatalf("expected no-path when already inside destination")
	}
}

func TestFindOutOfBoundsDestination(t *testing.T) {
	f := NewFinder(5, 5)
	c := newWallChecker()

	_, ok := f.Find(c, 0, 0, Destination{X: 10, Y: 10, Dist: 1.0})
	if ok {
		t.Fatalf("expected no-path for an out-of-grid destination")
	}
}

func TestFindRoundTripSymmetric(t *testing.T) {
	f := NewFinder(8, 8)
	c := newWallChecker()

	forward, ok := f.Find(c, 0, 0, Destination{X: 7, Y: 7, Dist: 0.5})
	if !ok {
		t.Fatalf("expected forward path")
	}
	last := forward[len(forward)-1]

	backward, ok := f.Find(c, last.X, last.Y, Destination{X: 0, Y: 0, Dist: 0.5})
	if !ok {
		t.Fatalf("expected backward path")
	}
	if backward[0] != last {
		t.Fatalf("backward path should start where forward ended")
	}
	if backward[len(backward)-1] != (Point{0, 0}) {
		t.Fatalf("backward path should end at the original start")
	}
}

func TestFindNeverEndsInFriendSpace(t *testing.T) {
	f := NewFinder(3, 1)
	c := newWallChecker()
	c.friend[Point{2, 0}] = true

	_, ok := f.Find(c, 0, 0, Destination{X: 2, Y: 0, Dist: 0.5})
	if ok {
		t.Fatalf("expected no-path: only candidate goal cell is friend-occupied")
	}
}

func TestFindRespectsIterationCap(t *testing.T) {
	f := NewFinder(100, 100)
	f.SetMaxIterations(2)
	c := newWallChecker()

	_, ok := f.Find(c, 0, 0, Destination{X: 99, Y: 99, Dist: 0.5})
	if ok {
		t.Fatalf("expected the tiny iteration cap to exhaust the search")
	}
}
