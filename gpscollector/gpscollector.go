// Package gpscollector periodically samples an absolute position source and a
// heading source, retaining the latest synchronized sample and logging each
// one in a form that can be pasted into a waypoint file.
package gpscollector

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// A PositionSource reports an absolute position fix and altitude in meters.
type PositionSource interface {
	Position(ctx context.Context) (*geo.Point, float64, error)
}

// A HeadingSource reports the robot's yaw in radians.
type HeadingSource interface {
	Heading(ctx context.Context) (float64, error)
}

// Sample is one synchronized position/heading observation.
type Sample struct {
	Point    *geo.Point
	Altitude float64
	Yaw      float64
	Stamp    time.Time
}

// An Option configures a collector at construction.
type Option func(*Collector)

// WithClock substitutes the clock driving the polling loop.
func WithClock(c clock.Clock) Option {
	return func(gc *Collector) { gc.clock = c }
}

// Collector polls its sources at a fixed interval.
type Collector struct {
	position PositionSource
	heading  HeadingSource
	interval time.Duration
	logger   golog.Logger
	clock    clock.Clock

	mu         sync.Mutex
	latest     Sample
	haveSample bool
	index      int

	cancel                  context.CancelFunc
	activeBackgroundWorkers sync.WaitGroup
}

// New returns a collector that is not yet polling.
func New(
	position PositionSource,
	heading HeadingSource,
	interval time.Duration,
	logger golog.Logger,
	opts ...Option,
) (*Collector, error) {
	if interval <= 0 {
		return nil, errors.Errorf("polling interval must be positive, got %v", interval)
	}
	gc := &Collector{
		position: position,
		heading:  heading,
		interval: interval,
		logger:   logger,
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(gc)
	}
	return gc, nil
}

// Start begins polling in the background until the context is canceled or
// Close is called.
func (gc *Collector) Start(ctx context.Context) {
	ctx, gc.cancel = context.WithCancel(ctx)
	ticker := gc.clock.Ticker(gc.interval)
	gc.activeBackgroundWorkers.Add(1)
	utils.PanicCapturingGo(func() {
		defer gc.activeBackgroundWorkers.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gc.sampleOnce(ctx)
			}
		}
	})
}

func (gc *Collector) sampleOnce(ctx context.Context) {
	point, altitude, err := gc.position.Position(ctx)
	if err != nil {
		gc.logger.Errorw("position source read failed", "error", err)
		return
	}
	yaw, err := gc.heading.Heading(ctx)
	if err != nil {
		gc.logger.Errorw("heading source read failed", "error", err)
		return
	}

	gc.mu.Lock()
	gc.latest = Sample{Point: point, Altitude: altitude, Yaw: yaw, Stamp: gc.clock.Now()}
	gc.haveSample = true
	index := gc.index
	gc.index++
	gc.mu.Unlock()

	gc.logger.Infof("gps_waypoint%d: %.8f, %.8f, %.8f, %.8f", index, point.Lat(), point.Lng(), altitude, yaw)
}

// Latest returns the most recent sample, and whether any sample has been
// collected yet.
func (gc *Collector) Latest() (Sample, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.latest, gc.haveSample
}

// Close stops polling and waits for the background worker to exit.
func (gc *Collector) Close() {
	if gc.cancel != nil {
		gc.cancel()
	}
	gc.activeBackgroundWorkers.Wait()
}
