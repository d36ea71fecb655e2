package audio

// AnalyzerBuilderOption is a functional option for configuring an Analyzer.
// Use the With* functions to create options that are applied directly to the analyzer instance.
type AnalyzerBuilderOption func(*analyzerImpl)

// WithSampleRate sets the PCM sample rate the analyzer expects.
// Values <= 0 are ignored.
//
// Parameters:
//   - rate: samples per second (default 48000)
//
// Returns:
//   - AnalyzerBuilderOption: option function to apply
func WithSampleRate(rate int) AnalyzerBuilderOption {
	return func(a *analyzerImpl) {
		if rate > 0 {
			a.sampleRate = rate
		}
	}
}

// WithBlockSize sets the number of samples analyzed per Goertzel pass.
// Values <= 0 are ignored.
//
// Parameters:
//   - size: samples per analysis block (default 1024)
//
// Returns:
//   - AnalyzerBuilderOption: option function to apply
func WithBlockSize(size int) AnalyzerBuilderOption {
	return func(a *analyzerImpl) {
		if size > 0 {
			a.blockSize = size
		}
	}
}

// WithSmoothing sets the exponential smoothing factor applied to band
// energies. 0 disables smoothing (bands follow each block exactly); values
// approaching 1 make bands decay slowly. Values outside [0, 1) are ignored.
//
// Parameters:
//   - factor: smoothing factor in [0, 1) (default 0.8)
//
// Returns:
//   - AnalyzerBuilderOption: option function to apply
func WithSmoothing(factor float32) AnalyzerBuilderOption {
	return func(a *analyzerImpl) {
		if factor >= 0 && factor < 1 {
			a.smoothing = factor
		}
	}
}

// WithBandCenters sets the Goertzel target frequencies in Hz, low to high.
//
// Parameters:
//   - centers: one target frequency per band
//
// Returns:
//   - AnalyzerBuilderOption: option function to apply
func WithBandCenters(centers [BandCount]float64) AnalyzerBuilderOption {
	return func(a *analyzerImpl) {
		a.bandCenters = centers
	}
}
