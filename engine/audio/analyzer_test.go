package audio

import (
	"math"
	"testing"
)

// binSine generates n samples of a sine whose frequency sits exactly on the
// analysis bin nearest targetHz, so the Goertzel response is exact.
func binSine(n int, targetHz, sampleRate float64, amplitude float32) []float32 {
	k := math.Round(float64(n) * targetHz / sampleRate)
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = amplitude * float32(math.Sin(2*math.Pi*k*float64(i)/float64(n)))
	}
	return samples
}

func TestAnalyzerDetectsToneInMatchingBand(t *testing.T) {
	a := NewAnalyzer(WithSmoothing(0))

	a.Push(binSine(1024, 1000, 48000, 1.0))

	bands := a.Bands()
	if bands[2] < 0.9 {
		t.Fatalf("expected high energy in 1000Hz band, got %v", bands[2])
	}
	for _, i := range []int{0, 1, 3} {
		if bands[i] > 0.05 {
			t.Errorf("band %d expected near zero, got %v", i, bands[i])
		}
	}
}

func TestAnalyzerSilenceYieldsZeroBands(t *testing.T) {
	a := NewAnalyzer(WithSmoothing(0))

	a.Push(make([]float32, 2048))

	for i, v := range a.Bands() {
		if v != 0 {
			t.Errorf("band %d expected 0 for silence, got %v", i, v)
		}
	}
}

func TestAnalyzerHoldsPartialBlock(t *testing.T) {
	a := NewAnalyzer(WithSmoothing(0))

	// Less than one block: nothing should be analyzed yet.
	a.Push(binSine(512, 250, 48000, 1.0))
	if bands := a.Bands(); bands[1] != 0 {
		t.Fatalf("partial block should not update bands, got %v", bands[1])
	}

	// Completing the block triggers analysis.
	a.Push(binSine(512, 250, 48000, 1.0))
	if bands := a.Bands(); bands[1] == 0 {
		t.Fatal("completed block should update bands")
	}
}

func TestAnalyzerSmoothingDecay(t *testing.T) {
	a := NewAnalyzer(WithSmoothing(0.5))

	a.Push(binSine(1024, 4000, 48000, 1.0))
	loud := a.Bands()[3]
	if loud <= 0 {
		t.Fatal("expected energy after tone block")
	}

	a.Push(make([]float32, 1024))
	decayed := a.Bands()[3]
	if decayed >= loud || decayed <= 0 {
		t.Fatalf("expected partial decay after silence, loud=%v decayed=%v", loud, decayed)
	}

	if want := loud * 0.5; !almostEqual(decayed, want, 1e-5) {
		t.Errorf("expected decay to %v, got %v", want, decayed)
	}
}

func TestAnalyzerReset(t *testing.T) {
	a := NewAnalyzer(WithSmoothing(0))

	a.Push(binSine(1024, 60, 48000, 1.0))
	a.Reset()

	for i, v := range a.Bands() {
		if v != 0 {
			t.Errorf("band %d expected 0 after reset, got %v", i, v)
		}
	}
}

func TestAnalyzerCustomBandCenters(t *testing.T) {
	a := NewAnalyzer(
		WithSmoothing(0),
		WithSampleRate(44100),
		WithBandCenters([BandCount]float64{100, 500, 2000, 8000}),
	)

	if a.SampleRate() != 44100 {
		t.Fatalf("expected sample rate 44100, got %d", a.SampleRate())
	}

	a.Push(binSine(1024, 8000, 44100, 1.0))
	if bands := a.Bands(); bands[3] < 0.9 {
		t.Fatalf("expected high energy in 8000Hz band, got %v", bands[3])
	}
}

func TestDecodeF32(t *testing.T) {
	input := []byte{
		0x00, 0x00, 0x80, 0x3f, // 1.0
		0x00, 0x00, 0x00, 0xbf, // -0.5
	}

	samples := decodeF32(input, 2)
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0] != 1.0 || samples[1] != -0.5 {
		t.Fatalf("unexpected samples: %v", samples)
	}

	// Frame count beyond available bytes is clamped.
	if got := decodeF32(input, 10); len(got) != 2 {
		t.Fatalf("expected clamp to 2 samples, got %d", len(got))
	}
}

func almostEqual(a, b, tol float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}
