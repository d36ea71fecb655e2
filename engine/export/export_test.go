package export

import (
	"bytes"
	"image"
	"strings"
	"testing"
	"time"
)

func TestStripAlpha(t *testing.T) {
	rgba := []byte{
		10, 20, 30, 255,
		40, 50, 60, 128,
	}

	rgb := stripAlpha(rgba)
	want := []byte{10, 20, 30, 40, 50, 60}
	if !bytes.Equal(rgb, want) {
		t.Fatalf("expected %v, got %v", want, rgb)
	}
}

func TestTotalFrameCount(t *testing.T) {
	tests := []struct {
		name     string
		fps      int
		duration time.Duration
		want     int
	}{
		{"five seconds at 30", 30, 5 * time.Second, 150},
		{"one second at 60", 60, time.Second, 60},
		{"sub-frame duration clamps to one", 30, 10 * time.Millisecond, 1},
		{"half second at 24", 24, 500 * time.Millisecond, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalFrameCount(tt.fps, tt.duration); got != tt.want {
				t.Errorf("expected %d frames, got %d", tt.want, got)
			}
		})
	}
}

func TestFrameProgress(t *testing.T) {
	if got := frameProgress(0, 150); got != 0 {
		t.Errorf("first frame should be progress 0, got %v", got)
	}
	if got := frameProgress(149, 150); got != 1 {
		t.Errorf("final frame should be progress 1, got %v", got)
	}
	if got := frameProgress(0, 1); got != 0 {
		t.Errorf("single-frame recording should be progress 0, got %v", got)
	}

	mid := frameProgress(75, 150)
	if mid <= 0.5 || mid >= 0.51 {
		t.Errorf("mid frame progress out of range: %v", mid)
	}
}

func TestFFmpegArgs(t *testing.T) {
	args := strings.Join(ffmpegArgs(1920, 1080, 30, 8000, "out/clip.mp4"), " ")

	for _, want := range []string{
		"-pix_fmt rgb24",
		"-s 1920x1080",
		"-r 30",
		"-b:v 8000k",
		"-i -",
		"out/clip.mp4",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("expected args to contain %q, got %q", want, args)
		}
	}
}

func TestOutputFileName(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	got := outputFileName("captures", "png", ts)
	if got != "captures/marcher_20260314_150926.png" {
		t.Fatalf("unexpected file name: %q", got)
	}
}

func TestScaleImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = 200
	}

	dst := scaleImage(src, 2, 2)
	if dst.Bounds().Dx() != 2 || dst.Bounds().Dy() != 2 {
		t.Fatalf("unexpected scaled bounds: %v", dst.Bounds())
	}
	// Uniform source stays uniform through resampling.
	for i, v := range dst.Pix {
		if v != 200 {
			t.Fatalf("pixel byte %d changed during uniform scale: %d", i, v)
		}
	}
}

// sink collects written frames and records when it is closed.
type sink struct {
	frames [][]byte
	closed bool
}

func (s *sink) Write(p []byte) (int, error) {
	cp := make([]byte, len(p))
	copy(cp, p)
	s.frames = append(s.frames, cp)
	return len(p), nil
}

func (s *sink) Close() error {
	s.closed = true
	return nil
}

func TestWriteFramesPreservesOrder(t *testing.T) {
	rec := &recorderImpl{}
	ordered := make(chan chan []byte, 4)
	out := &sink{}
	done := make(chan error, 1)

	// Enqueue three slots, then fill them out of order.
	slots := make([]chan []byte, 3)
	for i := range slots {
		slots[i] = make(chan []byte, 1)
		ordered <- slots[i]
	}
	slots[2] <- []byte{2}
	slots[0] <- []byte{0}
	slots[1] <- []byte{1}
	close(ordered)

	rec.writeFrames(ordered, out, done)

	if err := <-done; err != nil {
		t.Fatalf("unexpected writer error: %v", err)
	}
	if !out.closed {
		t.Fatal("writer should close the pipe when drained")
	}
	if len(out.frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(out.frames))
	}
	for i, frame := range out.frames {
		if frame[0] != byte(i) {
			t.Fatalf("frame %d written out of order: got %d", i, frame[0])
		}
	}
}
