// Package waypoint contains a client for following a sequence of geocoded
// waypoints through an external follower service: it loads waypoints from a
// file, submits them as one goal, relays feedback, and reports the result.
package waypoint

import (
	"encoding/json"
	"fmt"
	"os"

	geo "github.com/kellydunn/golang-geo"
	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// Waypoint is one geocoded pose the robot should pass through.
type Waypoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Yaw       float64 `json:"yaw"`
}

// Point returns the waypoint's position as a geo point.
func (w Waypoint) Point() *geo.Point {
	return geo.NewPoint(w.Latitude, w.Longitude)
}

// Validate ensures the waypoint holds a plausible coordinate.
func (w Waypoint) Validate(path string) error {
	if w.Latitude < -90 || w.Latitude > 90 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("latitude %f out of range [-90, 90]", w.Latitude))
	}
	if w.Longitude < -180 || w.Longitude > 180 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("longitude %f out of range [-180, 180]", w.Longitude))
	}
	return nil
}

// LoadWaypoints reads a JSON array of waypoints from the given file.
func LoadWaypoints(filePath string) ([]Waypoint, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read waypoint file %q", filePath)
	}
	var waypoints []Waypoint
	if err := json.Unmarshal(data, &waypoints); err != nil {
		return nil, errors.Wrapf(err, "unable to parse waypoint file %q", filePath)
	}
	if len(waypoints) == 0 {
		return nil, errors.Errorf("waypoint file %q contains no waypoints", filePath)
	}
	for i, w := range waypoints {
		if err := w.Validate(fmt.Sprintf("%s.%d", filePath, i)); err != nil {
			return nil, err
		}
	}
	return waypoints, nil
}
