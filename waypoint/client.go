package waypoint

import (
	"context"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

const defaultReadyTimeout = 5 * time.Second

// Status is the terminal outcome of a follow goal.
type Status int

// The set of terminal statuses.
const (
	StatusUnknown = Status(iota)
	StatusSucceeded
	StatusCanceled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusCanceled:
		return "canceled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Feedback reports progress through the waypoint sequence.
type Feedback struct {
	CurrentWaypoint int
}

// Result reports the terminal outcome of a goal.
type Result struct {
	Status          Status
	MissedWaypoints []int
}

// A Service executes follow goals. It is the external task-execution
// protocol; this package neither computes trajectories nor enforces
// kinematics.
type Service interface {
	// Ready blocks until the service can accept a goal or the context ends.
	Ready(ctx context.Context) error
	// Follow submits a goal. Feedback arrives on the first channel; exactly one
	// Result arrives on the second, after which both are closed.
	Follow(ctx context.Context, waypoints []Waypoint) (<-chan Feedback, <-chan Result, error)
}

// An Option configures a client at construction.
type Option func(*Client)

// WithReadyTimeout bounds how long Start waits for the service to accept goals.
func WithReadyTimeout(d time.Duration) Option {
	return func(c *Client) { c.readyTimeout = d }
}

// Client drives a follower service through one goal at a time.
type Client struct {
	svc          Service
	logger       golog.Logger
	readyTimeout time.Duration
}

// NewClient returns a client for the given service.
func NewClient(svc Service, logger golog.Logger, opts ...Option) *Client {
	c := &Client{svc: svc, logger: logger, readyTimeout: defaultReadyTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start submits the waypoints as one goal, relays feedback to the log, and
// returns the terminal result.
func (c *Client) Start(ctx context.Context, waypoints []Waypoint) (Result, error) {
	if len(waypoints) == 0 {
		return Result{}, errors.New("no waypoints to follow")
	}

	readyCtx, cancel := context.WithTimeout(ctx, c.readyTimeout)
	defer cancel()
	if err := c.svc.Ready(readyCtx); err != nil {
		return Result{}, errors.Wrap(err, "follower service is not available")
	}

	c.logger.Infof("sending a path of %d waypoints", len(waypoints))
	for _, w := range waypoints {
		c.logger.Debugf("\t(%f, %f)", w.Latitude, w.Longitude)
	}

	feedback, result, err := c.svc.Follow(ctx, waypoints)
	if err != nil {
		return Result{}, errors.Wrap(err, "goal was rejected by the follower service")
	}

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case fb, ok := <-feedback:
			if !ok {
				feedback = nil
				continue
			}
			c.logger.Infof("passing waypoint %d of %d", fb.CurrentWaypoint, len(waypoints))
		case res, ok := <-result:
			if !ok {
				return Result{}, errors.New("follower service closed without a result")
			}
			switch res.Status {
			case StatusSucceeded:
				c.logger.Info("waypoint following succeeded")
			case StatusCanceled:
				c.logger.Warn("waypoint following was canceled")
			default:
				c.logger.Errorw("waypoint following failed", "missed", res.MissedWaypoints)
			}
			return res, nil
		}
	}
}
