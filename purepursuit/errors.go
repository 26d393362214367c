package purepursuit

import "github.com/pkg/errors"

// Cycle-fatal error kinds. Each aborts the current control cycle without
// touching the last emitted command; callers distinguish them with errors.Is.
var (
	// ErrEmptyPlan means no reference plan has been set or it has zero poses.
	ErrEmptyPlan = errors.New("stored plan has zero poses")

	// ErrRobotPoseTransform means the robot's pose could not be expressed in
	// the plan's frame within the transform tolerance.
	ErrRobotPoseTransform = errors.New("unable to transform robot pose into plan frame")

	// ErrEmptyTransformedPlan means no plan pose inside the pruning window
	// survived transformation into the base frame.
	ErrEmptyTransformedPlan = errors.New("transformed plan has zero poses")

	// ErrCollisionImminent means an occupied cell lies on the straight path to
	// the lookahead point. A supervising layer should treat this as a safety
	// abort, not a retryable control failure.
	ErrCollisionImminent = errors.New("collision imminent along path to lookahead point")

	// ErrInactive means the controller was asked for a command while not active.
	ErrInactive = errors.New("controller is not active")
)
