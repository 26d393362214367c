package purepursuit

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"github.com/viam-labs/pathtrack/spatial"
)

// applyKinematicConstraints rate-limits a proposed command against the
// configured accel/decel bounds and ramps linear velocity down when the
// carrot had to be pulled in short of the requested lookahead distance.
// A dt of zero or less bypasses the accel/decel clamp.
func (pp *purePursuit) applyKinematicConstraints(
	linear, angular, distError, lookaheadDist, dt float64,
) (float64, float64) {
	// A shortfall beyond two cells means the path is ending; scale linearly to
	// a smooth stop.
	if distError > 2.0*pp.costmap.Resolution() {
		linear *= distError / lookaheadDist
	}

	if dt <= 0 {
		return linear, angular
	}

	linAccel := (linear - pp.lastCmd.LinearX) / dt
	if linAccel > pp.cfg.MaxAccel {
		linear = pp.lastCmd.LinearX + pp.cfg.MaxAccel*dt
	} else if linAccel < -pp.cfg.MaxDecel {
		linear = pp.lastCmd.LinearX - pp.cfg.MaxDecel*dt
	}

	angAccel := (angular - pp.lastCmd.AngularZ) / dt
	if angAccel > pp.cfg.MaxAccel {
		angular = pp.lastCmd.AngularZ + pp.cfg.MaxAccel*dt
	} else if angAccel < -pp.cfg.MaxDecel {
		angular = pp.lastCmd.AngularZ - pp.cfg.MaxDecel*dt
	}

	return linear, angular
}

// collisionImminent samples the straight segment from the local origin to the
// carrot at costmap resolution and reports the first lethal cell found.
func (pp *purePursuit) collisionImminent(carrot spatial.Pose) (bool, r3.Vector) {
	dist := carrot.DistanceToOrigin()
	steps := int(math.Ceil(dist/pp.costmap.Resolution())) + 1
	if steps < 2 {
		steps = 2
	}
	for _, t := range floats.Span(make([]float64, steps), 0, 1) {
		pt := carrot.Point.Mul(t)
		if pp.costmap.IsLethal(pt) {
			return true, pt
		}
	}
	return false, r3.Vector{}
}
