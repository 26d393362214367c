package purepursuit

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/viam-labs/pathtrack/spatial"
)

// transformPlan expresses the stored plan in the robot's base frame, keeping
// only the poses from the one nearest the robot out to half the costmap's
// extent. As a side effect it prunes the stored plan's passed prefix so later
// cycles never re-scan it, and publishes the transformed plan to the
// registered observer.
func (pp *purePursuit) transformPlan(ctx context.Context, pose spatial.Pose) (spatial.Plan, error) {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	if len(pp.plan.Poses) == 0 {
		return spatial.Plan{}, errors.Wrapf(ErrEmptyPlan, "controller %q", pp.name)
	}

	robotPose, err := pp.tf.TransformPose(ctx, pose, pp.plan.Frame, pp.tolerance)
	if err != nil {
		pp.logger.Errorw("unable to place robot in plan frame",
			"controller", pp.name,
			"robot_frame", pose.Frame,
			"plan_frame", pp.plan.Frame,
			"tolerance", pp.tolerance,
			"error", err,
		)
		return spatial.Plan{}, errors.Wrapf(ErrRobotPoseTransform,
			"frame %q to frame %q: %v", pose.Frame, pp.plan.Frame, err)
	}

	// Poses farther than half the visible local map extent are of no use to
	// steering and are not worth transforming.
	maxCells := pp.costmap.SizeInCellsX()
	if pp.costmap.SizeInCellsY() > maxCells {
		maxCells = pp.costmap.SizeInCellsY()
	}
	maxTransformDist := float64(maxCells) * pp.costmap.Resolution() / 2.0

	// Nearest pose first; ties keep the earliest index so repeated cycles with
	// identical inputs are stable.
	nearest := 0
	best := math.Inf(1)
	for i, planPose := range pp.plan.Poses {
		if d := robotPose.DistanceTo(planPose); d < best {
			best = d
			nearest = i
		}
	}

	end := len(pp.plan.Poses)
	for i := nearest; i < len(pp.plan.Poses); i++ {
		if robotPose.DistanceTo(pp.plan.Poses[i]) > maxTransformDist {
			end = i
			break
		}
	}

	transformed := spatial.Plan{Frame: pp.cfg.BaseFrame}
	for _, planPose := range pp.plan.Poses[nearest:end] {
		// The plan's declared frame is authoritative; individual poses may carry
		// an empty or stale frame name.
		planPose.Frame = pp.plan.Frame
		planPose.Stamp = robotPose.Stamp
		local, err := pp.tf.TransformPose(ctx, planPose, pp.cfg.BaseFrame, pp.tolerance)
		if err != nil {
			pp.logger.Errorw("dropping plan pose that failed to transform",
				"controller", pp.name,
				"plan_frame", pp.plan.Frame,
				"base_frame", pp.cfg.BaseFrame,
				"x", planPose.Point.X,
				"y", planPose.Point.Y,
				"error", err,
			)
			continue
		}
		transformed.Poses = append(transformed.Poses, local)
	}

	// Prune the passed prefix. Irreversible; the nearest pose becomes the new
	// front of the stored plan.
	pp.plan.Poses = pp.plan.Poses[nearest:]

	if pp.transformedPlanFunc != nil {
		pp.transformedPlanFunc(transformed)
	}

	if len(transformed.Poses) == 0 {
		return spatial.Plan{}, errors.Wrapf(ErrEmptyTransformedPlan,
			"controller %q: %d candidate poses within %f m", pp.name, end-nearest, maxTransformDist)
	}
	return transformed, nil
}
