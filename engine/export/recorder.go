package export

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/Carmen-Shannon/marcher-go/engine/camera"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer"
	"github.com/Carmen-Shannon/marcher-go/engine/session"
)

// recorderImpl implements the Recorder interface.
type recorderImpl struct {
	mu *sync.Mutex

	r    renderer.Renderer
	sess session.Session
	cam  camera.Controller

	fps      int
	bitrate  int // kilobits per second
	duration time.Duration
	width    uint32
	height   uint32
	motion   camera.Motion

	outputDir string

	// prepPool converts readback frames off the render thread. Workers are
	// reused across frames; ordering is preserved by handing each frame a
	// dedicated slot channel enqueued in submission order.
	prepPool worker.DynamicWorkerPool

	cmd        *exec.Cmd
	stdin      io.WriteCloser
	ordered    chan chan []byte
	writerDone chan error

	basePose    camera.Pose
	totalFrames int
	frameIndex  int
	active      bool
	outPath     string
}

var _ Recorder = &recorderImpl{}

// Recorder captures a time-bounded sequence of offscreen frames and pipes
// them into ffmpeg as raw video. The session's recording clock ensures each
// frame advances by exactly 1/fps seconds regardless of render speed.
type Recorder interface {
	// Start opens the ffmpeg pipe, switches the session to the recording
	// clock, and routes rendering into an offscreen capture target.
	// Returns a descriptive error when ffmpeg is not installed; the caller
	// can surface the notice and continue without recording.
	//
	// Returns:
	//   - error: error if ffmpeg is missing or capture setup failed
	Start() error

	// RenderFrame renders and submits the next recorded frame. The camera
	// is positioned by the configured motion preset before rendering.
	// A no-op once all frames have been captured; check Done and call Stop.
	//
	// Parameters:
	//   - frame: renders one frame (BeginFrame through EndFrame)
	//
	// Returns:
	//   - error: error if rendering or readback failed
	RenderFrame(frame FrameFunc) error

	// Done reports whether all frames for the configured duration have
	// been captured.
	//
	// Returns:
	//   - bool: true once the recording is complete
	Done() bool

	// Active reports whether a recording is in progress.
	//
	// Returns:
	//   - bool: true between a successful Start and Stop
	Active() bool

	// Stop finishes the recording: drains pending frames, closes the
	// ffmpeg pipe, restores the camera pose and the wall clock, and
	// releases the capture target.
	//
	// Returns:
	//   - string: path of the written mp4 file
	//   - error: error if the encoder failed
	Stop() (string, error)
}

// NewRecorder creates a Recorder with the provided options.
// Defaults: 30 fps, 8000 kbps, 5 second duration, 1920x1080, static camera.
//
// Parameters:
//   - r: the renderer to capture from
//   - sess: the session whose clock and uniforms drive recorded frames
//   - cam: the camera controller positioned by the motion preset
//   - options: functional options for recorder configuration
//
// Returns:
//   - Recorder: the newly created recorder
func NewRecorder(r renderer.Renderer, sess session.Session, cam camera.Controller, options ...RecorderBuilderOption) Recorder {
	rec := &recorderImpl{
		mu:        &sync.Mutex{},
		r:         r,
		sess:      sess,
		cam:       cam,
		fps:       30,
		bitrate:   8000,
		duration:  5 * time.Second,
		width:     1920,
		height:    1080,
		motion:    camera.MotionStatic,
		outputDir: ".",
	}

	for _, opt := range options {
		opt(rec)
	}

	rec.prepPool = worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 64, 1*time.Second)
	return rec
}

func (rec *recorderImpl) Start() error {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.active {
		return fmt.Errorf("recording already in progress")
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("video export unavailable: ffmpeg not found in PATH: %w", err)
	}

	if err := os.MkdirAll(rec.outputDir, 0o755); err != nil {
		return fmt.Errorf("video export output: %w", err)
	}
	rec.outPath = outputFileName(rec.outputDir, "mp4", time.Now())
	cmd := exec.Command(ffmpegPath, ffmpegArgs(rec.width, rec.height, rec.fps, rec.bitrate, rec.outPath)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("video export pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("video export start: %w", err)
	}

	if err := rec.r.BeginCapture(rec.width, rec.height); err != nil {
		_ = stdin.Close()
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("video export capture: %w", err)
	}

	rec.sess.BeginRecording(rec.fps)
	rec.basePose = rec.cam.Pose()
	rec.totalFrames = totalFrameCount(rec.fps, rec.duration)
	rec.frameIndex = 0
	rec.cmd = cmd
	rec.stdin = stdin
	rec.ordered = make(chan chan []byte, 8)
	rec.writerDone = make(chan error, 1)
	rec.active = true

	go rec.writeFrames(rec.ordered, rec.stdin, rec.writerDone)
	return nil
}

func (rec *recorderImpl) RenderFrame(frame FrameFunc) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if !rec.active || rec.frameIndex >= rec.totalFrames {
		return nil
	}

	rec.motion.Apply(rec.cam, rec.basePose, frameProgress(rec.frameIndex, rec.totalFrames))

	if err := frame(); err != nil {
		return fmt.Errorf("recording frame %d: %w", rec.frameIndex, err)
	}

	pixels, err := rec.r.ReadPixels()
	if err != nil {
		return fmt.Errorf("recording frame %d readback: %w", rec.frameIndex, err)
	}

	// Enqueue the slot before submitting so the writer sees frames in
	// submission order even if prep tasks finish out of order.
	slot := make(chan []byte, 1)
	rec.ordered <- slot
	rec.prepPool.SubmitTask(worker.Task{
		ID: rec.frameIndex,
		Do: func() (any, error) {
			slot <- stripAlpha(pixels)
			return nil, nil
		},
	})

	rec.frameIndex++
	rec.sess.AdvanceFrame()
	return nil
}

func (rec *recorderImpl) Done() bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.active && rec.frameIndex >= rec.totalFrames
}

func (rec *recorderImpl) Active() bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.active
}

func (rec *recorderImpl) Stop() (string, error) {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if !rec.active {
		return "", fmt.Errorf("no recording in progress")
	}
	rec.active = false

	close(rec.ordered)
	writeErr := <-rec.writerDone
	waitErr := rec.cmd.Wait()

	rec.sess.EndRecording()
	rec.cam.SetPose(rec.basePose)
	rec.r.EndCapture()
	rec.cmd = nil
	rec.stdin = nil

	if writeErr != nil {
		return "", fmt.Errorf("video export write: %w", writeErr)
	}
	if waitErr != nil {
		return "", fmt.Errorf("video export encode: %w", waitErr)
	}
	return rec.outPath, nil
}

// writeFrames drains slot channels in order and streams frames into the
// encoder pipe. Closes the pipe when the slot channel is closed so ffmpeg
// finalizes the file.
func (rec *recorderImpl) writeFrames(ordered chan chan []byte, stdin io.WriteCloser, done chan error) {
	var firstErr error
	for slot := range ordered {
		pixels := <-slot
		if firstErr != nil {
			continue
		}
		if _, err := stdin.Write(pixels); err != nil {
			firstErr = err
		}
	}
	if err := stdin.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	done <- firstErr
}

// ffmpegArgs builds the encoder invocation for raw RGB frames on stdin.
func ffmpegArgs(width, height uint32, fps, bitrateKbps int, outPath string) []string {
	return []string{
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-c:v", "libx264",
		"-b:v", fmt.Sprintf("%dk", bitrateKbps),
		"-pix_fmt", "yuv420p",
		"-y", outPath,
	}
}

// stripAlpha converts tightly packed RGBA pixels to RGB24 for the encoder.
func stripAlpha(rgba []byte) []byte {
	pixelCount := len(rgba) / 4
	rgb := make([]byte, pixelCount*3)
	for i := 0; i < pixelCount; i++ {
		rgb[i*3] = rgba[i*4]
		rgb[i*3+1] = rgba[i*4+1]
		rgb[i*3+2] = rgba[i*4+2]
	}
	return rgb
}

// totalFrameCount returns the number of frames a recording spans.
// Always at least one frame.
func totalFrameCount(fps int, duration time.Duration) int {
	frames := int(float64(fps) * duration.Seconds())
	if frames < 1 {
		frames = 1
	}
	return frames
}

// frameProgress maps a frame index to normalized progress in [0, 1].
// The final frame lands exactly on 1 so motion presets complete their sweep.
func frameProgress(index, total int) float32 {
	if total <= 1 {
		return 0
	}
	return float32(index) / float32(total-1)
}
