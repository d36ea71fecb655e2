// Package audio provides microphone capture and frequency band analysis.
// The analyzer is pure and testable without an audio device; capture feeds
// it from a live microphone stream when one is available.
package audio

import (
	"math"
	"sync"
)

// BandCount is the number of frequency bands the analyzer reports.
// Matches the audio_bands uniform field consumed by shader programs.
const BandCount = 4

// defaultBandCenters are the Goertzel target frequencies in Hz, chosen to
// spread across bass, low-mid, high-mid, and treble content.
var defaultBandCenters = [BandCount]float64{60, 250, 1000, 4000}

// analyzerImpl implements the Analyzer interface.
type analyzerImpl struct {
	mu *sync.Mutex

	sampleRate  int
	blockSize   int
	bandCenters [BandCount]float64
	smoothing   float32

	pending []float32
	bands   [BandCount]float32
}

var _ Analyzer = &analyzerImpl{}

// Analyzer computes smoothed per-band energies from a stream of PCM samples.
// Samples are accumulated into fixed-size blocks; each complete block is run
// through one Goertzel filter per band and the results are exponentially
// smoothed so band values decay rather than flicker.
type Analyzer interface {
	// Push appends mono PCM samples (range -1..1) to the analysis stream.
	// Complete blocks are analyzed immediately; a partial block is held
	// until enough samples arrive.
	//
	// Parameters:
	//   - samples: mono float32 PCM samples
	Push(samples []float32)

	// Bands returns the current smoothed band energies, each in 0..1.
	//
	// Returns:
	//   - [BandCount]float32: band energies, low frequencies first
	Bands() [BandCount]float32

	// Reset clears all accumulated samples and band energies.
	Reset()

	// SampleRate returns the sample rate the analyzer was configured with.
	//
	// Returns:
	//   - int: samples per second
	SampleRate() int
}

// NewAnalyzer creates an Analyzer with the provided options.
// Defaults: 48000 Hz sample rate, 1024-sample blocks, smoothing 0.8,
// band centers at 60/250/1000/4000 Hz.
//
// Parameters:
//   - options: functional options for analyzer configuration
//
// Returns:
//   - Analyzer: the newly created analyzer
func NewAnalyzer(options ...AnalyzerBuilderOption) Analyzer {
	a := &analyzerImpl{
		mu:          &sync.Mutex{},
		sampleRate:  48000,
		blockSize:   1024,
		bandCenters: defaultBandCenters,
		smoothing:   0.8,
	}

	for _, opt := range options {
		opt(a)
	}

	a.pending = make([]float32, 0, a.blockSize)
	return a
}

func (a *analyzerImpl) Push(samples []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pending = append(a.pending, samples...)
	for len(a.pending) >= a.blockSize {
		a.analyzeBlock(a.pending[:a.blockSize])
		a.pending = a.pending[:copy(a.pending, a.pending[a.blockSize:])]
	}
}

func (a *analyzerImpl) Bands() [BandCount]float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bands
}

func (a *analyzerImpl) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = a.pending[:0]
	a.bands = [BandCount]float32{}
}

func (a *analyzerImpl) SampleRate() int {
	return a.sampleRate
}

// analyzeBlock runs one Goertzel filter per band over a complete block and
// folds the normalized magnitudes into the smoothed band state.
// Caller must hold the mutex.
func (a *analyzerImpl) analyzeBlock(block []float32) {
	for i, center := range a.bandCenters {
		magnitude := goertzel(block, center, float64(a.sampleRate))
		value := float32(math.Min(magnitude, 1.0))
		a.bands[i] = a.bands[i]*a.smoothing + value*(1-a.smoothing)
	}
}

// goertzel computes the normalized magnitude (0..~1 for a full-scale tone)
// of the frequency bin nearest targetHz over the given sample block.
func goertzel(block []float32, targetHz, sampleRate float64) float64 {
	n := len(block)
	k := math.Round(float64(n) * targetHz / sampleRate)
	w := 2 * math.Pi * k / float64(n)
	coeff := 2 * math.Cos(w)

	var s1, s2 float64
	for _, x := range block {
		s0 := float64(x) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2
	if power < 0 {
		power = 0
	}
	// A full-scale sine at the bin frequency yields N/2 here.
	return math.Sqrt(power) * 2 / float64(n)
}
