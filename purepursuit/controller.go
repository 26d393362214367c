// Package purepursuit implements a pure pursuit path tracking controller. It
// converts the robot's current pose and a reference plan into linear/angular
// velocity commands, recomputed once per control cycle: the stored plan is
// transformed into the robot's local frame and pruned, a lookahead point is
// chosen on it, a circular arc through that point sets the curvature, the
// resulting command is rate limited against kinematic bounds, and a collision
// gate can reject it outright.
package purepursuit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/viam-labs/pathtrack/costmap"
	"github.com/viam-labs/pathtrack/frame"
	"github.com/viam-labs/pathtrack/spatial"
)

// carrot distances at or under this yield zero curvature instead of a
// division blow-up.
const minCarrotDist = 1e-3

// A Controller follows a reference plan by emitting velocity commands. It is
// host-agnostic; an embedding application owns its lifecycle and invokes
// ComputeVelocityCommands on a periodic trigger, at most one cycle at a time.
type Controller interface {
	// Configure validates the config and binds the transformer and costmap the
	// controller will consult. It resets the last-command state.
	Configure(cfg Config, tf frame.Transformer, cm costmap.Costmap) error
	// Activate enables command computation.
	Activate()
	// Deactivate disables command computation without losing state.
	Deactivate()
	// Cleanup drops the stored plan and observer callbacks.
	Cleanup()
	// SetPlan replaces the stored reference plan wholesale.
	SetPlan(plan spatial.Plan) error
	// ComputeVelocityCommands runs one control cycle and returns the commanded
	// twist. On any error no command is emitted and the last-command state is
	// left unchanged.
	ComputeVelocityCommands(ctx context.Context, pose spatial.Pose, speed spatial.Twist) (spatial.Twist, error)
}

// An Option configures a controller at construction.
type Option func(*purePursuit)

// WithReceivedPlanFunc registers an observer invoked with each plan handed to
// SetPlan.
func WithReceivedPlanFunc(fn func(spatial.Plan)) Option {
	return func(pp *purePursuit) { pp.receivedPlanFunc = fn }
}

// WithTransformedPlanFunc registers an observer invoked with the local-frame
// plan produced each cycle.
func WithTransformedPlanFunc(fn func(spatial.Plan)) Option {
	return func(pp *purePursuit) { pp.transformedPlanFunc = fn }
}

// WithClock substitutes the clock used to stamp emitted commands.
func WithClock(c clock.Clock) Option {
	return func(pp *purePursuit) { pp.clock = c }
}

type purePursuit struct {
	name   string
	logger golog.Logger
	clock  clock.Clock

	// mu serializes plan replacement against the per-cycle read-modify-write
	// of the stored plan.
	mu   sync.Mutex
	plan spatial.Plan

	cfg       Config
	tolerance time.Duration
	tf        frame.Transformer
	costmap   costmap.Costmap

	active  bool
	lastCmd spatial.Twist

	receivedPlanFunc    func(spatial.Plan)
	transformedPlanFunc func(spatial.Plan)
}

// New returns an unconfigured controller.
func New(name string, logger golog.Logger, opts ...Option) Controller {
	pp := &purePursuit{
		name:   name,
		logger: logger,
		clock:  clock.New(),
	}
	for _, opt := range opts {
		opt(pp)
	}
	return pp
}

func (pp *purePursuit) Configure(cfg Config, tf frame.Transformer, cm costmap.Costmap) error {
	if err := cfg.Validate(pp.name); err != nil {
		return err
	}
	if tf == nil {
		return errors.Errorf("controller %q requires a transformer", pp.name)
	}
	if cm == nil {
		return errors.Errorf("controller %q requires a costmap", pp.name)
	}
	pp.mu.Lock()
	defer pp.mu.Unlock()
	pp.cfg = cfg.withDefaults()
	pp.tolerance = time.Duration(pp.cfg.TransformToleranceSec * float64(time.Second))
	pp.tf = tf
	pp.costmap = cm
	pp.lastCmd = spatial.Twist{}
	return nil
}

func (pp *purePursuit) Activate() {
	pp.mu.Lock()
	pp.active = true
	pp.mu.Unlock()
	pp.logger.Infof("activating controller %q", pp.name)
}

func (pp *purePursuit) Deactivate() {
	pp.mu.Lock()
	pp.active = false
	pp.mu.Unlock()
	pp.logger.Infof("deactivating controller %q", pp.name)
}

func (pp *purePursuit) Cleanup() {
	pp.mu.Lock()
	pp.plan = spatial.Plan{}
	pp.receivedPlanFunc = nil
	pp.transformedPlanFunc = nil
	pp.mu.Unlock()
	pp.logger.Infof("cleaning up controller %q", pp.name)
}

func (pp *purePursuit) SetPlan(plan spatial.Plan) error {
	pp.mu.Lock()
	pp.plan = plan.Copy()
	publish := pp.receivedPlanFunc
	pp.mu.Unlock()
	if publish != nil {
		publish(plan)
	}
	return nil
}

func (pp *purePursuit) ComputeVelocityCommands(
	ctx context.Context, pose spatial.Pose, speed spatial.Twist,
) (spatial.Twist, error) {
	pp.mu.Lock()
	if !pp.active {
		pp.mu.Unlock()
		return spatial.Twist{}, errors.Wrapf(ErrInactive, "controller %q", pp.name)
	}
	pp.mu.Unlock()

	transformed, err := pp.transformPlan(ctx, pose)
	if err != nil {
		return spatial.Twist{}, err
	}

	lookaheadDist := pp.lookaheadDistance(speed)
	carrot := lookaheadPose(transformed, lookaheadDist)
	carrotDist := carrot.DistanceToOrigin()

	curvature := 0.0
	if carrotDist > minCarrotDist {
		curvature = 2.0 * carrot.Point.Y / (carrotDist * carrotDist)
	}

	linear := pp.cfg.DesiredLinearVel
	angular := linear * curvature

	// The first cycle has no prior command to rate against; a zero dt bypasses
	// the accel/decel clamp.
	dt := 0.0
	if !pp.lastCmd.Stamp.IsZero() {
		dt = pose.Stamp.Sub(pp.lastCmd.Stamp).Seconds()
	}
	linear, angular = pp.applyKinematicConstraints(
		linear, angular, math.Abs(lookaheadDist-carrotDist), lookaheadDist, dt)

	angular = clamp(angular, -pp.cfg.MaxAngularVel, pp.cfg.MaxAngularVel)
	linear = clamp(linear, 0, pp.cfg.DesiredLinearVel)

	if hit, pt := pp.collisionImminent(carrot); hit {
		pp.logger.Errorw("collision imminent, aborting command",
			"controller", pp.name,
			"frame", transformed.Frame,
			"blocked_x", pt.X,
			"blocked_y", pt.Y,
			"carrot_dist", carrotDist,
		)
		return spatial.Twist{}, errors.Wrapf(ErrCollisionImminent,
			"occupied cell at (%f, %f) in frame %q", pt.X, pt.Y, transformed.Frame)
	}

	cmd := spatial.Twist{Stamp: pp.clock.Now(), LinearX: linear, AngularZ: angular}
	pp.lastCmd = cmd
	return cmd, nil
}

// lookaheadDistance derives the carrot distance from current speed when
// velocity scaling is enabled, else returns the fixed configured distance.
func (pp *purePursuit) lookaheadDistance(speed spatial.Twist) float64 {
	if !pp.cfg.UseVelocityScaledLookaheadDist {
		return pp.cfg.LookaheadDist
	}
	return clamp(speed.LinearX*pp.cfg.LookaheadGain, pp.cfg.MinLookaheadDist, pp.cfg.MaxLookaheadDist)
}

// lookaheadPose returns the first pose at or past the lookahead distance from
// the local origin, falling back to the last pose when the plan ends short.
func lookaheadPose(plan spatial.Plan, lookaheadDist float64) spatial.Pose {
	for _, pose := range plan.Poses {
		if pose.DistanceToOrigin() >= lookaheadDist {
			return pose
		}
	}
	return plan.Poses[len(plan.Poses)-1]
}

func clamp(value, low, high float64) float64 {
	return math.Max(low, math.Min(high, value))
}
