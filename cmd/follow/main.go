// Package main runs a simulated base along a generated plan through the pure
// pursuit controller, logging each commanded twist.
package main

import (
	"context"
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/viam-labs/pathtrack/costmap"
	"github.com/viam-labs/pathtrack/frame"
	"github.com/viam-labs/pathtrack/purepursuit"
	"github.com/viam-labs/pathtrack/spatial"
)

var logger = golog.NewDevelopmentLogger("pathtrack_follow")

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	RateHz   float64 `flag:"rate,default=20,usage=control loop rate in Hz"`
	Obstacle bool    `flag:"obstacle,usage=place an obstacle across the path"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.RateHz <= 0 {
		return errors.Errorf("rate must be positive, got %f", argsParsed.RateHz)
	}
	return followPlan(ctx, argsParsed, logger)
}

func followPlan(ctx context.Context, args Arguments, logger golog.Logger) error {
	// Robot-centric local grid, 4m x 4m at 5cm cells.
	grid, err := costmap.NewGrid(80, 80, 0.05, r3.Vector{X: -2, Y: -2})
	if err != nil {
		return err
	}
	if args.Obstacle {
		for y := -0.3; y <= 0.3; y += grid.Resolution() {
			if err := grid.SetCostAtPoint(r3.Vector{X: 1.5, Y: y}, costmap.LethalCost); err != nil {
				return err
			}
		}
	}

	tfs := frame.NewStaticSystem()
	now := time.Now()
	if err := tfs.SetTransform("odom", spatial.NewPose("map", now, 0, 0, 0)); err != nil {
		return err
	}

	// Robot starts slightly off the path with a small heading error.
	robot := spatial.NewPose("odom", now, 0, -0.2, 0.1)
	if err := tfs.SetTransform("base_link", robot); err != nil {
		return err
	}

	controller := purepursuit.New("follow_demo", logger,
		purepursuit.WithTransformedPlanFunc(func(plan spatial.Plan) {
			logger.Debugf("transformed plan has %d poses", len(plan.Poses))
		}),
	)
	if err := controller.Configure(purepursuit.Config{}, tfs, grid); err != nil {
		return err
	}
	controller.Activate()
	defer controller.Cleanup()
	defer controller.Deactivate()

	plan := spatial.Plan{Frame: "map"}
	for x := 0.0; x <= 5.0; x += 0.1 {
		plan.Poses = append(plan.Poses, spatial.NewPose("map", now, x, 0, 0))
	}
	goal := plan.Poses[len(plan.Poses)-1]
	if err := controller.SetPlan(plan); err != nil {
		return err
	}

	dt := 1.0 / args.RateHz
	speed := spatial.Twist{}
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	for {
		if !utils.SelectContextOrWaitChan(ctx, ticker.C) {
			return ctx.Err()
		}
		robot.Stamp = time.Now()
		if err := tfs.SetTransform("odom", spatial.NewPose("map", robot.Stamp, 0, 0, 0)); err != nil {
			return err
		}
		if err := tfs.SetTransform("base_link", robot); err != nil {
			return err
		}

		cmd, err := controller.ComputeVelocityCommands(ctx, robot, speed)
		if err != nil {
			logger.Errorw("control cycle failed", "error", err)
			return err
		}
		logger.Infof("cmd: linear %.3f m/s angular %.3f rad/s at (%.2f, %.2f)",
			cmd.LinearX, cmd.AngularZ, robot.Point.X, robot.Point.Y)

		// Integrate the unicycle model one step.
		robot.Point.X += cmd.LinearX * math.Cos(robot.Theta) * dt
		robot.Point.Y += cmd.LinearX * math.Sin(robot.Theta) * dt
		robot.Theta = spatial.NormalizeTheta(robot.Theta + cmd.AngularZ*dt)
		speed = cmd

		if robot.DistanceTo(goal) < 0.1 {
			logger.Info("reached end of plan")
			return nil
		}
	}
}
