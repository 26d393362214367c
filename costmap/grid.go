package costmap

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Grid is an in-memory cost grid. The origin is the position of the lower
// left corner of cell (0, 0) in the grid's frame.
type Grid struct {
	mu         sync.Mutex
	width      int
	height     int
	resolution float64
	origin     r3.Vector
	costs      []byte
}

// NewGrid returns a zero-cost (all free) grid.
func NewGrid(width, height int, resolution float64, origin r3.Vector) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("grid dimensions must be positive, got %dx%d", width, height)
	}
	if resolution <= 0 {
		return nil, errors.Errorf("grid resolution must be positive, got %f", resolution)
	}
	return &Grid{
		width:      width,
		height:     height,
		resolution: resolution,
		origin:     origin,
		costs:      make([]byte, width*height),
	}, nil
}

// Resolution returns the side length of one cell in meters.
func (g *Grid) Resolution() float64 { return g.resolution }

// SizeInCellsX returns the grid width in cells.
func (g *Grid) SizeInCellsX() int { return g.width }

// SizeInCellsY returns the grid height in cells.
func (g *Grid) SizeInCellsY() int { return g.height }

// SetCost sets the cost of the cell at the given cell coordinates.
func (g *Grid) SetCost(x, y int, cost byte) error {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return errors.Errorf("cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height)
	}
	g.mu.Lock()
	g.costs[y*g.width+x] = cost
	g.mu.Unlock()
	return nil
}

// SetCostAtPoint sets the cost of the cell containing the given point.
func (g *Grid) SetCostAtPoint(pt r3.Vector, cost byte) error {
	x, y, ok := g.pointToCell(pt)
	if !ok {
		return errors.Errorf("point (%f, %f) outside grid", pt.X, pt.Y)
	}
	return g.SetCost(x, y, cost)
}

// CostAt returns the cost of the cell at the given cell coordinates.
func (g *Grid) CostAt(x, y int) (byte, error) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, errors.Errorf("cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.costs[y*g.width+x], nil
}

// IsLethal reports whether the cell containing the given point has lethal
// cost. Points outside the grid are free.
func (g *Grid) IsLethal(pt r3.Vector) bool {
	x, y, ok := g.pointToCell(pt)
	if !ok {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.costs[y*g.width+x] >= LethalCost
}

func (g *Grid) pointToCell(pt r3.Vector) (int, int, bool) {
	x := int(math.Floor((pt.X - g.origin.X) / g.resolution))
	y := int(math.Floor((pt.Y - g.origin.Y) / g.resolution))
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, 0, false
	}
	return x, y, true
}
