package spatial

import (
	"math"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestPoseDistances(t *testing.T) {
	a := NewPose("map", time.Time{}, 1, 2, 0)
	b := NewPose("map", time.Time{}, 4, 6, math.Pi)
	test.That(t, a.DistanceTo(b), test.ShouldAlmostEqual, 5)
	test.That(t, b.DistanceTo(a), test.ShouldAlmostEqual, 5)
	test.That(t, a.DistanceTo(a), test.ShouldEqual, 0)
	test.That(t, b.DistanceToOrigin(), test.ShouldAlmostEqual, math.Hypot(4, 6))
}

func TestNormalizeTheta(t *testing.T) {
	for _, tc := range []struct {
		in, out float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-7 * math.Pi / 2, math.Pi / 2},
	} {
		test.That(t, NormalizeTheta(tc.in), test.ShouldAlmostEqual, tc.out)
	}
}

func TestPlanCopy(t *testing.T) {
	plan := Plan{Frame: "map", Poses: []Pose{
		NewPose("map", time.Time{}, 0, 0, 0),
		NewPose("map", time.Time{}, 1, 0, 0),
	}}
	copied := plan.Copy()
	test.That(t, copied, test.ShouldResemble, plan)
	copied.Poses[0].Point.X = 99
	test.That(t, plan.Poses[0].Point.X, test.ShouldEqual, 0)
}
