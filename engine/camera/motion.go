package camera

import "math"

// Motion identifies a camera motion preset used during video recording.
// Motions drive the controller deterministically from the recording clock so
// captured videos are reproducible regardless of wall-clock jitter.
type Motion int

const (
	// MotionStatic keeps the camera at its base pose for the whole recording.
	MotionStatic Motion = iota

	// MotionOrbit sweeps a full revolution around the target over the
	// recording duration, holding radius and elevation.
	MotionOrbit

	// MotionDolly pushes from 1.5x the base radius down to 0.75x over the
	// recording duration, holding the viewing angles.
	MotionDolly
)

// String returns the preset name used in configuration and logs.
//
// Returns:
//   - string: "static", "orbit", or "dolly"
func (m Motion) String() string {
	switch m {
	case MotionOrbit:
		return "orbit"
	case MotionDolly:
		return "dolly"
	default:
		return "static"
	}
}

// ParseMotion maps a configuration string to a Motion, defaulting to
// MotionStatic for unknown names.
//
// Parameters:
//   - name: the motion preset name
//
// Returns:
//   - Motion: the parsed motion preset
func ParseMotion(name string) Motion {
	switch name {
	case "orbit":
		return MotionOrbit
	case "dolly":
		return MotionDolly
	default:
		return MotionStatic
	}
}

// Apply positions the controller for one recorded frame: progress is the
// normalized recording time in [0, 1] and base is the pose captured when
// recording started. The controller is written through SetPose so bounds
// clamping still applies.
//
// Parameters:
//   - c: the controller to drive
//   - base: the orbit pose at recording start
//   - progress: normalized recording progress in [0, 1]
func (m Motion) Apply(c Controller, base Pose, progress float32) {
	p := base
	switch m {
	case MotionOrbit:
		p.Azimuth = base.Azimuth + 2*math.Pi*progress
	case MotionDolly:
		p.Radius = base.Radius * (1.5 - 0.75*progress)
	}
	c.SetPose(p)
}
