// Package pathfind implements A* search over a fine-grained passability
// grid with a rectangular goal region, as consumed by the area/movement
// systems. A single Finder instance is reused across calls so the
// g/f-score buffers only need to be cleared, not reallocated, on the
// hot path.
package pathfind

import (
	"container/heap"
)

// MaxIterations is the default cap on the number of nodes A* will expand
// before giving up and reporting no path.
const MaxIterations = 2000

const bigScore = 1 << 30

// Point is an integer tile coordinate.
type Point struct {
	X, Y int
}

// Destination describes the goal region and the mover's footprint. (X, Y,
// W, H) is the goal rectangle in tile space; (ParentW, ParentH) is the
// mover's own footprint, used to offset the mover's center during distance
// tests. Dist is the arrival threshold; MaxPathLen optionally caps the
// returned path length.
type Destination struct {
	X, Y, W, H       int
	ParentW, ParentH int
	Dist             float64
	MaxPathLen       int // 0 means unbounded
}

// LocationChecker supplies the per-cell passability predicate and the
// "is this cell reserved for a friend" check used by the goal test.
type LocationChecker interface {
	Passable(x, y int) bool
	InFriendSpace(x, y int) bool
}

// Finder runs A* over a width x height grid. Create one per grid size and
// reuse it across find() calls.
type Finder struct {
	width, height int

	gScore []int
	fScore []int
	inOpen []bool
	closed []bool
	cameFrom []int // index+1 into the grid, 0 means "no predecessor"

	open openHeap

	maxIterations int
}

// NewFinder creates a Finder for a grid of the given dimensions.
func NewFinder(width, height int) *Finder {
	return &Finder{
		width:         width,
		height:        height,
		gScore:        make([]int, width*height),
		fScore:        make([]int, width*height),
		inOpen:        make([]bool, width*height),
		closed:        make([]bool, width*height),
		cameFrom:      make([]int, width*height),
		maxIterations: MaxIterations,
	}
}

// SetMaxIterations overrides the default iteration cap.
func (f *Finder) SetMaxIterations(n int) {
	if n > 0 {
		f.maxIterations = n
	}
}

type openEntry struct {
	index  int
	fScore int
}

type openHeap []openEntry

func (h openHeap) Len() int            { return len(h) }
func (h openHeap) Less(i, j int) bool  { return h[i].fScore < h[j].fScore }
func (h openHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *openHeap) Push(x any)         { *h = append(*h, x.(openEntry)) }
func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Find searches for a path from (startX, startY) to within dest.Dist of
// dest's rectangle. It returns the path (start cell inclusive, goal cell
// inclusive) and true, or (nil, false) if no path exists: the start already
// satisfies the goal test, the destination lies outside the grid, the open
// set empties before reaching the goal, the result would exceed
// dest.MaxPathLen, or the iteration cap is hit first.
func (f *Finder) Find(checker LocationChecker, startX, startY int, dest Destination) ([]Point, bool) {
	if dest.X < 0 || dest.Y < 0 || dest.X+dest.W > f.width || dest.Y+dest.H > f.height {
		return nil, false
	}

	destCX := float64(dest.X) + float64(dest.W)/2
	destCY := float64(dest.Y) + float64(dest.H)/2
	destWOver2 := float64(dest.W) / 2
	destHOver2 := float64(dest.H) / 2
	parentWOver2 := float64(dest.ParentW) / 2
	parentHOver2 := float64(dest.ParentH) / 2

	distSquared := func(idx int) int {
		sx := float64(idx%f.width) + parentWOver2
		sy := float64(idx/f.width) + parentHOver2
		dx := abs(sx-destCX) - destWOver2
		dy := abs(sy-destCY) - destHOver2
		if dx < 0 {
			dx = 0
		}
		if dy < 0 {
			dy = 0
		}
		return int(dx*dx + dy*dy)
	}

	destDistSquared := int(dest.Dist * dest.Dist)
	start := startX + startY*f.width

	if distSquared(start) <= destDistSquared {
		return nil, false
	}

	for i := range f.gScore {
		f.gScore[i] = bigScore
		f.fScore[i] = bigScore
		f.inOpen[i] = false
		f.closed[i] = false
		f.cameFrom[i] = 0
	}
	f.open = f.open[:0]

	f.gScore[start] = 0
	f.fScore[start] = distSquared(start)
	heap.Push(&f.open, openEntry{index: start, fScore: f.fScore[start]})
	f.inOpen[start] = true

	isGoal := func(idx int) bool {
		x, y := idx%f.width, idx/f.width
		return distSquared(idx) <= destDistSquared && !checker.InFriendSpace(x, y)
	}

	iterations := 0
	for iterations < f.maxIterations && len(f.open) > 0 {
		current := heap.Pop(&f.open).(openEntry).index
		f.inOpen[current] = false

		if isGoal(current) {
			path := f.reconstruct(current)
			if len(path) == 1 && path[0].X == startX && path[0].Y == startY {
				return nil, false
			}
			if dest.MaxPathLen > 0 && len(path) > dest.MaxPathLen {
				return nil, false
			}
			return path, true
		}

		f.closed[current] = true

		for _, neighbor := range f.neighbors(current) {
			if neighbor < 0 || f.closed[neighbor] {
				continue
			}

			nx, ny := neighbor%f.width, neighbor/f.width
			if !checker.Passable(nx, ny) {
				f.closed[neighbor] = true
				continue
			}

			tentativeG := f.gScore[current] + 1
			if tentativeG >= f.gScore[neighbor] {
				continue
			}

			f.cameFrom[neighbor] = current + 1
			f.gScore[neighbor] = tentativeG
			f.fScore[neighbor] = tentativeG + distSquared(neighbor)

			if !f.inOpen[neighbor] {
				heap.Push(&f.open, openEntry{index: neighbor, fScore: f.fScore[neighbor]})
				f.inOpen[neighbor] = true
			}
		}

		iterations++
	}

	return nil, false
}

func (f *Finder) reconstruct(current int) []Point {
	path := []Point{{X: current % f.width, Y: current / f.width}}
	for f.cameFrom[current] != 0 {
		current = f.cameFrom[current] - 1
		path = append(path, Point{X: current % f.width, Y: current / f.width})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// neighbors returns the four axis-aligned neighbours of idx, using -1 for
// any that would cross the grid boundary.
func (f *Finder) neighbors(idx int) [4]int {
	width, height := f.width, f.height
	col := idx % width

	n := [4]int{-1, -1, -1, -1}
	if top := idx - width; top >= 0 {
		n[0] = top
	}
	if bottom := idx + width; bottom < width*height {
		n[1] = bottom
	}
	if col < width-1 {
		n[2] = idx + 1
	}
	if col > 0 {
		n[3] = idx - 1
	}
	return n
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
