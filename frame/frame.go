// Package frame provides pose transformation between named reference frames.
package frame

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/viam-labs/pathtrack/spatial"
)

// World is the conventional name of the fixed root frame.
const World = "world"

// ErrStaleTransform is returned when a transform on the path between two
// frames is older than the caller's tolerance allows.
var ErrStaleTransform = errors.New("transform is older than allowed tolerance")

// A Transformer places poses in other reference frames. Implementations must
// complete within the given tolerance budget; a transform that cannot be
// produced in time fails rather than blocks.
type Transformer interface {
	// TransformPose expresses the given pose in dstFrame. The tolerance bounds
	// how stale the transforms used to get there may be relative to the pose's
	// timestamp; zero means no staleness limit.
	TransformPose(ctx context.Context, pose spatial.Pose, dstFrame string, tolerance time.Duration) (spatial.Pose, error)
}

// NewUnknownFrameError is returned when a named frame has never been
// registered with a frame system.
func NewUnknownFrameError(name string) error {
	return errors.Errorf("reference frame %q not registered in frame system", name)
}
