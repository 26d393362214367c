package frame

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/viam-labs/pathtrack/spatial"
)

// planarTF maps coordinates in a child frame to its parent frame.
type planarTF struct {
	x, y, theta float64
}

func (t planarTF) compose(other planarTF) planarTF {
	sin, cos := math.Sincos(t.theta)
	return planarTF{
		x:     t.x + cos*other.x - sin*other.y,
		y:     t.y + sin*other.x + cos*other.y,
		theta: t.theta + other.theta,
	}
}

func (t planarTF) invert() planarTF {
	sin, cos := math.Sincos(-t.theta)
	return planarTF{
		x:     -(cos*t.x - sin*t.y),
		y:     -(sin*t.x + cos*t.y),
		theta: -t.theta,
	}
}

func (t planarTF) apply(p spatial.Pose) spatial.Pose {
	sin, cos := math.Sincos(t.theta)
	p.Point.X, p.Point.Y = t.x+cos*p.Point.X-sin*p.Point.Y, t.y+sin*p.Point.X+cos*p.Point.Y
	p.Theta = spatial.NormalizeTheta(p.Theta + t.theta)
	return p
}

type frameEntry struct {
	parent string
	tf     planarTF
	stamp  time.Time
}

// StaticSystem is a tree of parent-relative planar frames. Transforms are
// registered with timestamps and looked up relative to a pose's timestamp, so
// a frame that has stopped updating eventually fails lookups instead of
// silently serving old data.
type StaticSystem struct {
	mu      sync.RWMutex
	entries map[string]frameEntry
}

// NewStaticSystem returns an empty frame system.
func NewStaticSystem() *StaticSystem {
	return &StaticSystem{entries: map[string]frameEntry{}}
}

// SetTransform registers or updates child's pose relative to its parent. The
// pose's Frame names the parent and its Stamp dates the observation.
func (s *StaticSystem) SetTransform(child string, poseInParent spatial.Pose) error {
	if child == poseInParent.Frame {
		return errors.Errorf("frame %q cannot be its own parent", child)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.entries[child]; ok && entry.parent != poseInParent.Frame {
		return errors.Errorf("frame %q is already a child of %q", child, entry.parent)
	}
	// Reject a parent whose own ancestry leads back to child, which would turn
	// the tree into a loop and make lookups spin forever.
	for name := poseInParent.Frame; ; {
		entry, ok := s.entries[name]
		if !ok {
			break
		}
		if entry.parent == child {
			return errors.Errorf("frame %q cannot adopt its ancestor %q", poseInParent.Frame, child)
		}
		name = entry.parent
	}
	s.entries[child] = frameEntry{
		parent: poseInParent.Frame,
		tf:     planarTF{x: poseInParent.Point.X, y: poseInParent.Point.Y, theta: poseInParent.Theta},
		stamp:  poseInParent.Stamp,
	}
	return nil
}

// TransformPose expresses pose in dstFrame by composing transforms up through
// the tree from both frames to their shared root.
func (s *StaticSystem) TransformPose(
	ctx context.Context, pose spatial.Pose, dstFrame string, tolerance time.Duration,
) (spatial.Pose, error) {
	if pose.Frame == dstFrame {
		return pose, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.known(pose.Frame) {
		return spatial.Pose{}, NewUnknownFrameError(pose.Frame)
	}
	if !s.known(dstFrame) {
		return spatial.Pose{}, NewUnknownFrameError(dstFrame)
	}

	srcToRoot, srcRoot, err := s.chainToRoot(pose.Frame, pose.Stamp, tolerance)
	if err != nil {
		return spatial.Pose{}, err
	}
	dstToRoot, dstRoot, err := s.chainToRoot(dstFrame, pose.Stamp, tolerance)
	if err != nil {
		return spatial.Pose{}, err
	}
	if srcRoot != dstRoot {
		return spatial.Pose{}, errors.Errorf(
			"frames %q and %q are not connected (roots %q and %q)", pose.Frame, dstFrame, srcRoot, dstRoot)
	}

	out := dstToRoot.invert().compose(srcToRoot).apply(pose)
	out.Frame = dstFrame
	return out, nil
}

func (s *StaticSystem) known(name string) bool {
	if _, ok := s.entries[name]; ok {
		return true
	}
	for _, entry := range s.entries {
		if entry.parent == name {
			return true
		}
	}
	return false
}

// chainToRoot composes the transform mapping the named frame's coordinates to
// its root frame, failing if any hop is staler than the tolerance relative to
// the reference stamp.
func (s *StaticSystem) chainToRoot(name string, stamp time.Time, tolerance time.Duration) (planarTF, string, error) {
	tf := planarTF{}
	for {
		entry, ok := s.entries[name]
		if !ok {
			return tf, name, nil
		}
		if tolerance > 0 && stamp.Sub(entry.stamp) > tolerance {
			return planarTF{}, "", errors.Wrapf(ErrStaleTransform,
				"%q relative to %q is %v old with tolerance %v",
				name, entry.parent, stamp.Sub(entry.stamp), tolerance)
		}
		tf = entry.tf.compose(tf)
		name = entry.parent
	}
}
