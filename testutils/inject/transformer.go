// Package inject provides injectable implementations of the module's external
// collaborator contracts for use in tests.
package inject

import (
	"context"
	"time"

	"github.com/viam-labs/pathtrack/frame"
	"github.com/viam-labs/pathtrack/spatial"
)

// Transformer is an injected frame transformer.
type Transformer struct {
	frame.Transformer
	TransformPoseFunc func(
		ctx context.Context, pose spatial.Pose, dstFrame string, tolerance time.Duration,
	) (spatial.Pose, error)
}

// TransformPose calls the injected TransformPose or the real version.
func (t *Transformer) TransformPose(
	ctx context.Context, pose spatial.Pose, dstFrame string, tolerance time.Duration,
) (spatial.Pose, error) {
	if t.TransformPoseFunc == nil {
		return t.Transformer.TransformPose(ctx, pose, dstFrame, tolerance)
	}
	return t.TransformPoseFunc(ctx, pose, dstFrame, tolerance)
}
