// Package camera provides the orbit controller that positions the raymarch
// eye point. The controller owns spherical coordinates (radius, azimuth,
// elevation) around a target and recomputes the world-space position whenever
// they change; the session reads Position/Target each frame when filling the
// camera fields of the uniform header.
package camera

// Controller defines the orbit camera control surface. Controllers own
// positional state; the render session reads from them and never writes
// position directly except through the orbit methods.
type Controller interface {
	// Position returns the camera's world-space position, derived from the
	// current spherical coordinates.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at/pivot point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Drag applies a pointer drag in screen pixels: horizontal motion orbits
	// around the Y axis, vertical motion tilts, both scaled by the mouse
	// sensitivity and clamped to the elevation bounds.
	//
	// Parameters:
	//   - dx: horizontal drag delta in pixels
	//   - dy: vertical drag delta in pixels
	Drag(dx, dy float32)

	// Zoom adjusts the orbit radius. Positive delta zooms in (closer to the
	// target), scaled by the zoom speed and clamped to the radius bounds.
	//
	// Parameters:
	//   - delta: zoom amount (scroll wheel notches)
	Zoom(delta float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// SetAzimuth sets the horizontal angle directly and recomputes position.
	//
	// Parameters:
	//   - azimuth: new horizontal angle in radians
	SetAzimuth(azimuth float32)

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// SetElevation sets the vertical angle directly, clamped to bounds.
	//
	// Parameters:
	//   - elevation: new vertical angle in radians
	SetElevation(elevation float32)

	// Pose captures the controller's full orbit state so it can be restored
	// later, e.g. around a recording that drives the camera with a motion
	// preset.
	//
	// Returns:
	//   - Pose: the current orbit pose
	Pose() Pose

	// SetPose restores a previously captured orbit pose (clamped to bounds).
	//
	// Parameters:
	//   - p: the pose to restore
	SetPose(p Pose)
}

// Pose is a value snapshot of an orbit controller's state.
type Pose struct {
	// Radius is the distance from the target.
	Radius float32

	// Azimuth is the horizontal angle around the Y axis in radians.
	Azimuth float32

	// Elevation is the vertical angle from the horizontal plane in radians.
	Elevation float32

	// Target is the look-at/pivot point.
	Target [3]float32
}
