package export

import (
	"time"

	"github.com/Carmen-Shannon/marcher-go/engine/camera"
)

// RecorderBuilderOption is a functional option for configuring a Recorder.
// Use the With* functions to create options that are applied directly to the recorder instance.
type RecorderBuilderOption func(*recorderImpl)

// WithRecorderFPS sets the recording frame rate. Values <= 0 are ignored.
//
// Parameters:
//   - fps: recorded frames per second (default 30)
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderFPS(fps int) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		if fps > 0 {
			rec.fps = fps
		}
	}
}

// WithRecorderBitrate sets the encoder bitrate in kilobits per second.
// Values <= 0 are ignored.
//
// Parameters:
//   - kbps: target bitrate (default 8000)
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderBitrate(kbps int) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		if kbps > 0 {
			rec.bitrate = kbps
		}
	}
}

// WithRecorderDuration sets the recording length. Values <= 0 are ignored.
//
// Parameters:
//   - d: recording duration (default 5s)
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderDuration(d time.Duration) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		if d > 0 {
			rec.duration = d
		}
	}
}

// WithRecorderResolution sets the recorded frame dimensions.
// Zero values are ignored.
//
// Parameters:
//   - width: frame width in pixels (default 1920)
//   - height: frame height in pixels (default 1080)
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderResolution(width, height uint32) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		if width > 0 && height > 0 {
			rec.width = width
			rec.height = height
		}
	}
}

// WithRecorderMotion sets the camera motion preset applied across the
// recording's duration.
//
// Parameters:
//   - m: the motion preset (default MotionStatic)
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderMotion(m camera.Motion) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		rec.motion = m
	}
}

// WithRecorderOutputDir sets the directory recordings are written to.
// Empty values are ignored (default is the working directory).
//
// Parameters:
//   - dir: output directory path
//
// Returns:
//   - RecorderBuilderOption: option function to apply
func WithRecorderOutputDir(dir string) RecorderBuilderOption {
	return func(rec *recorderImpl) {
		if dir != "" {
			rec.outputDir = dir
		}
	}
}
