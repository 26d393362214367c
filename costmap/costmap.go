// Package costmap provides the 2-D occupancy cost grid queries used for
// collision gating, plus an in-memory grid implementation.
package costmap

import "github.com/golang/geo/r3"

// LethalCost is the cost at and above which a cell is considered impassable.
const LethalCost byte = 254

// A Costmap answers resolution and extent queries plus per-point lethality
// lookups in the map's own frame.
type Costmap interface {
	// Resolution returns the side length of one cell in meters.
	Resolution() float64
	// SizeInCellsX returns the grid width in cells.
	SizeInCellsX() int
	// SizeInCellsY returns the grid height in cells.
	SizeInCellsY() int
	// IsLethal reports whether the cell containing the given point is lethal.
	// Points outside the grid are treated as free space.
	IsLethal(pt r3.Vector) bool
}
