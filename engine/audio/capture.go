package audio

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
)

// captureImpl implements the Capture interface.
type captureImpl struct {
	mu *sync.Mutex

	analyzer Analyzer
	context  *malgo.AllocatedContext
	device   *malgo.Device
	running  bool
}

var _ Capture = &captureImpl{}

// Capture streams mono microphone audio into an Analyzer.
// Start failures (no device, missing permission) are reported as descriptive
// errors so the caller can log a notice and continue with zero band energies.
type Capture interface {
	// Start opens the default capture device and begins streaming samples
	// into the analyzer. Returns an error if no device is available or
	// permission is denied; the analyzer simply stays silent in that case.
	//
	// Returns:
	//   - error: error if the capture device could not be opened or started
	Start() error

	// Close stops the device and releases the audio context. Best-effort;
	// release failures are swallowed. Safe to call without a prior
	// successful Start, and safe to call multiple times.
	Close()

	// Analyzer returns the analyzer this capture feeds.
	//
	// Returns:
	//   - Analyzer: the backing analyzer
	Analyzer() Analyzer
}

// NewCapture creates a Capture feeding the given analyzer.
// If analyzer is nil, a default Analyzer is created.
//
// Parameters:
//   - analyzer: the analyzer to feed, or nil for a default one
//
// Returns:
//   - Capture: the newly created capture
func NewCapture(analyzer Analyzer) Capture {
	if analyzer == nil {
		analyzer = NewAnalyzer()
	}
	return &captureImpl{
		mu:       &sync.Mutex{},
		analyzer: analyzer,
	}
}

func (c *captureImpl) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("audio capture unavailable: %w", err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatF32
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(c.analyzer.SampleRate())
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			c.analyzer.Push(decodeF32(input, int(frameCount)))
		},
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("microphone unavailable (no device or permission denied): %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return fmt.Errorf("microphone failed to start: %w", err)
	}

	c.context = ctx
	c.device = device
	c.running = true
	return nil
}

func (c *captureImpl) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device != nil {
		c.device.Uninit()
		c.device = nil
	}
	if c.context != nil {
		_ = c.context.Uninit()
		c.context.Free()
		c.context = nil
	}
	c.running = false
	c.analyzer.Reset()
}

func (c *captureImpl) Analyzer() Analyzer {
	return c.analyzer
}

// decodeF32 converts little-endian float32 PCM bytes into samples.
func decodeF32(input []byte, frameCount int) []float32 {
	if frameCount*4 > len(input) {
		frameCount = len(input) / 4
	}
	samples := make([]float32, frameCount)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(input[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}
