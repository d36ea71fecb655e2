package export

// StillBuilderOption is a functional option for configuring a Still.
// Use the With* functions to create options that are applied directly to the still instance.
type StillBuilderOption func(*stillImpl)

// WithStillOutputDir sets the directory still images are written to.
// Empty values are ignored (default is the working directory).
//
// Parameters:
//   - dir: output directory path
//
// Returns:
//   - StillBuilderOption: option function to apply
func WithStillOutputDir(dir string) StillBuilderOption {
	return func(s *stillImpl) {
		if dir != "" {
			s.outputDir = dir
		}
	}
}

// WithStillOutputSize rescales the captured frame to the given dimensions
// before encoding. Zero values disable rescaling (default).
//
// Parameters:
//   - width: output width in pixels
//   - height: output height in pixels
//
// Returns:
//   - StillBuilderOption: option function to apply
func WithStillOutputSize(width, height uint32) StillBuilderOption {
	return func(s *stillImpl) {
		s.outWidth = width
		s.outHeight = height
	}
}
