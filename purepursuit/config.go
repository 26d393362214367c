package purepursuit

import (
	"time"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Default parameter values, applied by Configure wherever the corresponding
// field is zero.
const (
	defaultDesiredLinearVel   = 0.5
	defaultMaxAccel           = 1.0
	defaultMaxDecel           = 1.0
	defaultLookaheadDist      = 0.4
	defaultMinLookaheadDist   = 0.3
	defaultMaxLookaheadDist   = 0.6
	defaultLookaheadGain      = 1.5
	defaultMaxAngularVel      = 1.0
	defaultTransformTolerance = 100 * time.Millisecond
	defaultBaseFrame          = "base_link"
)

// Config holds the controller's tuning parameters. All distances are meters,
// velocities m/s or rad/s, accelerations m/s^2 or rad/s^2.
type Config struct {
	// DesiredLinearVel is the cruise speed commanded along the path.
	DesiredLinearVel float64 `json:"desired_linear_vel"`
	// MaxAccel and MaxDecel bound the per-cycle change of both velocity channels.
	MaxAccel float64 `json:"max_accel"`
	MaxDecel float64 `json:"max_decel"`
	// LookaheadDist is the fixed carrot distance when velocity scaling is off.
	LookaheadDist float64 `json:"lookahead_dist"`
	// MinLookaheadDist/MaxLookaheadDist clamp the velocity-scaled carrot distance.
	MinLookaheadDist float64 `json:"min_lookahead_dist"`
	MaxLookaheadDist float64 `json:"max_lookahead_dist"`
	// LookaheadGain scales current speed into a carrot distance.
	LookaheadGain float64 `json:"lookahead_gain"`
	// MaxAngularVel bounds the commanded angular velocity.
	MaxAngularVel float64 `json:"max_angular_vel"`
	// TransformToleranceSec bounds how stale frame transforms may be, in seconds.
	TransformToleranceSec float64 `json:"transform_tolerance"`
	// UseVelocityScaledLookaheadDist selects speed-proportional carrot distances.
	UseVelocityScaledLookaheadDist bool `json:"use_velocity_scaled_lookahead_dist"`
	// BaseFrame is the robot-local frame plans are steered in.
	BaseFrame string `json:"base_frame"`
}

// Validate ensures all parts of the config are valid.
func (cfg *Config) Validate(path string) error {
	for _, check := range []struct {
		field string
		value float64
	}{
		{"desired_linear_vel", cfg.DesiredLinearVel},
		{"max_accel", cfg.MaxAccel},
		{"max_decel", cfg.MaxDecel},
		{"lookahead_dist", cfg.LookaheadDist},
		{"min_lookahead_dist", cfg.MinLookaheadDist},
		{"max_lookahead_dist", cfg.MaxLookaheadDist},
		{"lookahead_gain", cfg.LookaheadGain},
		{"max_angular_vel", cfg.MaxAngularVel},
		{"transform_tolerance", cfg.TransformToleranceSec},
	} {
		if check.value < 0 {
			return utils.NewConfigValidationError(path,
				errors.Errorf("%s must not be negative, got %f", check.field, check.value))
		}
	}
	if cfg.MinLookaheadDist > cfg.MaxLookaheadDist && cfg.MaxLookaheadDist != 0 {
		return utils.NewConfigValidationError(path,
			errors.New("min_lookahead_dist must not exceed max_lookahead_dist"))
	}
	return nil
}

// withDefaults returns a copy of the config with zero fields replaced by
// their defaults.
func (cfg Config) withDefaults() Config {
	if cfg.DesiredLinearVel == 0 {
		cfg.DesiredLinearVel = defaultDesiredLinearVel
	}
	if cfg.MaxAccel == 0 {
		cfg.MaxAccel = defaultMaxAccel
	}
	if cfg.MaxDecel == 0 {
		cfg.MaxDecel = defaultMaxDecel
	}
	if cfg.LookaheadDist == 0 {
		cfg.LookaheadDist = defaultLookaheadDist
	}
	if cfg.MinLookaheadDist == 0 {
		cfg.MinLookaheadDist = defaultMinLookaheadDist
	}
	if cfg.MaxLookaheadDist == 0 {
		cfg.MaxLookaheadDist = defaultMaxLookaheadDist
	}
	if cfg.LookaheadGain == 0 {
		cfg.LookaheadGain = defaultLookaheadGain
	}
	if cfg.MaxAngularVel == 0 {
		cfg.MaxAngularVel = defaultMaxAngularVel
	}
	if cfg.TransformToleranceSec == 0 {
		cfg.TransformToleranceSec = defaultTransformTolerance.Seconds()
	}
	if cfg.BaseFrame == "" {
		cfg.BaseFrame = defaultBaseFrame
	}
	return cfg
}
