package spatial

import "time"

// Twist is a linear/angular velocity pair. It represents both a measured
// velocity coming in from odometry and a commanded velocity going out to a
// base.
type Twist struct {
	Stamp    time.Time
	LinearX  float64 // m/s along the robot's heading
	AngularZ float64 // rad/s about the vertical axis
}

// Plan is an ordered sequence of poses sharing one reference frame.
type Plan struct {
	Frame string
	Poses []Pose
}

// Copy returns a plan whose pose slice does not alias the receiver's.
func (p Plan) Copy() Plan {
	poses := make([]Pose, len(p.Poses))
	copy(poses, p.Poses)
	return Plan{Frame: p.Frame, Poses: poses}
}
