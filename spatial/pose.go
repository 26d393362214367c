// Package spatial contains the planar pose, twist, and plan types shared by
// the path tracking controller and its collaborators.
package spatial

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
)

// Pose is a planar position and heading observed in a named reference frame
// at a point in time.
type Pose struct {
	Frame string
	Stamp time.Time
	Point r3.Vector
	Theta float64 // heading in radians
}

// NewPose returns a pose at (x, y) with the given heading in the given frame.
func NewPose(frame string, stamp time.Time, x, y, theta float64) Pose {
	return Pose{Frame: frame, Stamp: stamp, Point: r3.Vector{X: x, Y: y}, Theta: theta}
}

// DistanceTo returns the Euclidean distance between the positions of two poses.
func (p Pose) DistanceTo(other Pose) float64 {
	return math.Hypot(p.Point.X-other.Point.X, p.Point.Y-other.Point.Y)
}

// DistanceToOrigin returns the Euclidean distance from the pose's position to
// the origin of its frame.
func (p Pose) DistanceToOrigin() float64 {
	return math.Hypot(p.Point.X, p.Point.Y)
}

// NormalizeTheta wraps an angle in radians to (-pi, pi].
func NormalizeTheta(theta float64) float64 {
	for theta > math.Pi {
		theta -= 2 * math.Pi
	}
	for theta <= -math.Pi {
		theta += 2 * math.Pi
	}
	return theta
}
