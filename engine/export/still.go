// Package export produces still images and video recordings from captured
// frames. Stills are encoded as PNG; video is piped as raw frames into an
// ffmpeg process. Both capture offscreen so the window surface is untouched.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/draw"

	"github.com/Carmen-Shannon/marcher-go/engine/renderer"
)

// FrameFunc renders one frame into the renderer's current target.
// The export package calls it while an offscreen capture target is active.
type FrameFunc func() error

// stillImpl implements the Still interface.
type stillImpl struct {
	r         renderer.Renderer
	width     uint32
	height    uint32
	outWidth  uint32
	outHeight uint32
	outputDir string
}

var _ Still = &stillImpl{}

// Still captures a single frame offscreen and encodes it as a PNG file.
type Still interface {
	// Capture renders one frame at the configured resolution, reads it
	// back, optionally rescales it, and writes a timestamped PNG.
	//
	// Parameters:
	//   - frame: renders one frame (BeginFrame through EndFrame)
	//
	// Returns:
	//   - string: path of the written PNG file
	//   - error: error if capture, readback, or encoding failed
	Capture(frame FrameFunc) (string, error)
}

// NewStill creates a Still that captures at the given resolution.
//
// Parameters:
//   - r: the renderer to capture from
//   - width: capture width in pixels
//   - height: capture height in pixels
//   - options: functional options for still configuration
//
// Returns:
//   - Still: the newly created still exporter
func NewStill(r renderer.Renderer, width, height uint32, options ...StillBuilderOption) Still {
	s := &stillImpl{
		r:         r,
		width:     width,
		height:    height,
		outputDir: ".",
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

func (s *stillImpl) Capture(frame FrameFunc) (string, error) {
	if err := s.r.BeginCapture(s.width, s.height); err != nil {
		return "", fmt.Errorf("still capture: %w", err)
	}
	defer s.r.EndCapture()

	if err := frame(); err != nil {
		return "", fmt.Errorf("still capture render: %w", err)
	}

	pixels, err := s.r.ReadPixels()
	if err != nil {
		return "", fmt.Errorf("still capture readback: %w", err)
	}

	img := &image.RGBA{
		Pix:    pixels,
		Stride: int(s.width) * 4,
		Rect:   image.Rect(0, 0, int(s.width), int(s.height)),
	}

	if s.outWidth > 0 && s.outHeight > 0 && (s.outWidth != s.width || s.outHeight != s.height) {
		img = scaleImage(img, int(s.outWidth), int(s.outHeight))
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("still capture output: %w", err)
	}
	path := outputFileName(s.outputDir, "png", time.Now())
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("still capture output: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("still capture encode: %w", err)
	}
	return path, nil
}

// scaleImage resamples src to the given dimensions with Catmull-Rom filtering.
func scaleImage(src *image.RGBA, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// outputFileName builds a timestamped output path in dir with the given extension.
func outputFileName(dir, ext string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("marcher_%s.%s", t.Format("20060102_150405"), ext))
}
