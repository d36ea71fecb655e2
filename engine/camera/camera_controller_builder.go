package camera

// ControllerOption is a functional option for configuring a Controller.
type ControllerOption func(*controllerImpl)

// WithRadius sets the initial orbit radius (distance from target).
//
// Parameters:
//   - radius: distance from the orbit target
//
// Returns:
//   - ControllerOption: functional option to set the radius
func WithRadius(radius float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle around the Y axis.
//
// Parameters:
//   - azimuth: horizontal angle in radians (0 = +Z axis)
//
// Returns:
//   - ControllerOption: functional option to set the azimuth
func WithAzimuth(azimuth float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle from the horizontal plane.
//
// Parameters:
//   - elevation: vertical angle in radians (0 = horizontal)
//
// Returns:
//   - ControllerOption: functional option to set the elevation
func WithElevation(elevation float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.elevation = elevation
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - ControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.target[0] = x
		cc.target[1] = y
		cc.target[2] = z
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: minimum zoom distance
//   - maxRadius: maximum zoom distance
//
// Returns:
//   - ControllerOption: functional option to set the radius bounds
func WithRadiusBounds(minRadius, maxRadius float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithElevationBounds sets the minimum and maximum elevation angle.
//
// Parameters:
//   - minElevation: minimum elevation in radians
//   - maxElevation: maximum elevation in radians
//
// Returns:
//   - ControllerOption: functional option to set the elevation bounds
func WithElevationBounds(minElevation, maxElevation float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.minElevation = minElevation
		cc.maxElevation = maxElevation
	}
}

// WithMouseSensitivity sets the drag sensitivity in radians per pixel.
//
// Parameters:
//   - sensitivity: radians of orbit per pixel of drag
//
// Returns:
//   - ControllerOption: functional option to set the sensitivity
func WithMouseSensitivity(sensitivity float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom speed in distance units per scroll notch.
//
// Parameters:
//   - speed: radius change per scroll notch
//
// Returns:
//   - ControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) ControllerOption {
	return func(cc *controllerImpl) {
		cc.zoomSpeed = speed
	}
}
