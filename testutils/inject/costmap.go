package inject

import (
	"github.com/golang/geo/r3"

	"github.com/viam-labs/pathtrack/costmap"
)

// Costmap is an injected costmap.
type Costmap struct {
	costmap.Costmap
	ResolutionFunc   func() float64
	SizeInCellsXFunc func() int
	SizeInCellsYFunc func() int
	IsLethalFunc     func(pt r3.Vector) bool
}

// Resolution calls the injected Resolution or the real version.
func (c *Costmap) Resolution() float64 {
	if c.ResolutionFunc == nil {
		return c.Costmap.Resolution()
	}
	return c.ResolutionFunc()
}

// SizeInCellsX calls the injected SizeInCellsX or the real version.
func (c *Costmap) SizeInCellsX() int {
	if c.SizeInCellsXFunc == nil {
		return c.Costmap.SizeInCellsX()
	}
	return c.SizeInCellsXFunc()
}

// SizeInCellsY calls the injected SizeInCellsY or the real version.
func (c *Costmap) SizeInCellsY() int {
	if c.SizeInCellsYFunc == nil {
		return c.Costmap.SizeInCellsY()
	}
	return c.SizeInCellsYFunc()
}

// IsLethal calls the injected IsLethal or the real version.
func (c *Costmap) IsLethal(pt r3.Vector) bool {
	if c.IsLethalFunc == nil {
		return c.Costmap.IsLethal(pt)
	}
	return c.IsLethalFunc(pt)
}
