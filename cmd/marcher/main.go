package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Carmen-Shannon/marcher-go/common"
	"github.com/Carmen-Shannon/marcher-go/config"
	"github.com/Carmen-Shannon/marcher-go/engine"
	"github.com/Carmen-Shannon/marcher-go/engine/audio"
	"github.com/Carmen-Shannon/marcher-go/engine/camera"
	"github.com/Carmen-Shannon/marcher-go/engine/control"
	"github.com/Carmen-Shannon/marcher-go/engine/export"
	"github.com/Carmen-Shannon/marcher-go/engine/preset"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/marcher-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/marcher-go/engine/session"
	"github.com/Carmen-Shannon/marcher-go/engine/window"
)

// Bind group layout slots every assembled program uses.
const (
	bindingUniforms = 0
	bindingTexture  = 1
	bindingSampler  = 2
)

// app wires the session, renderer, exporters, and control server together.
// All state edits flow through the edits queue and are applied between
// frames by the engine tick callback.
type app struct {
	mu *sync.Mutex

	settings config.Settings

	eng      engine.Engine
	r        renderer.Renderer
	sess     session.Session
	cam      camera.Controller
	provider bind_group_provider.BindGroupProvider

	capture  audio.Capture
	server   control.Server
	recorder export.Recorder
	still    export.Still

	edits chan func()

	startTime   time.Time
	lastElapsed float32

	activeKey  string
	paramIndex int

	scrollProgress float32
	shiftHeld      bool

	pendingScreenshot   bool
	pendingRecordToggle bool
	lastBroadcast       time.Time
}

func main() {
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	settings, err := config.Load("settings.json")
	if err != nil {
		engine.Logger().Warn("settings load failed, using defaults", "error", err)
	}

	a := &app{
		mu:        &sync.Mutex{},
		settings:  settings,
		edits:     make(chan func(), 64),
		startTime: time.Now(),
	}

	a.eng = engine.NewEngine(
		engine.WithTickRate(60),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(settings.Window.Title),
			window.WithWidth(settings.Window.Width),
			window.WithHeight(settings.Window.Height),
		)),
		engine.WithErrorCallback(func(err error) {
			// The single surface every error class lands on.
			engine.Logger().Error("marcher", "error", err)
		}),
	)

	a.r = renderer.NewRenderer(
		renderer.BackendTypeWGPU,
		a.eng.Window(),
		renderer.WithPresentMode(renderer.PresentModeVSync),
	)

	a.cam = camera.NewController(
		camera.WithRadius(5),
		camera.WithTarget(0, 0, 0),
	)
	a.sess = session.NewSession(session.WithCamera(a.cam))
	a.provider = bind_group_provider.NewBindGroupProvider("frame")

	a.still = export.NewStill(a.r,
		uint32(settings.Export.Width), uint32(settings.Export.Height),
		export.WithStillOutputDir(settings.Export.OutputDir),
	)
	a.recorder = export.NewRecorder(a.r, a.sess, a.cam,
		export.WithRecorderFPS(settings.Export.FPS),
		export.WithRecorderBitrate(settings.Export.BitrateKbps),
		export.WithRecorderDuration(time.Duration(settings.Export.DurationSec)*time.Second),
		export.WithRecorderResolution(uint32(settings.Export.Width), uint32(settings.Export.Height)),
		export.WithRecorderMotion(camera.ParseMotion(settings.Export.Motion)),
		export.WithRecorderOutputDir(settings.Export.OutputDir),
	)

	if settings.Audio.Enabled {
		a.capture = audio.NewCapture(audio.NewAnalyzer(audio.WithSampleRate(settings.Audio.SampleRate)))
		if err := a.capture.Start(); err != nil {
			// Bands stay at zero; the tool keeps running.
			a.eng.ReportError(err)
		}
		defer a.capture.Close()
	}

	if settings.Control.Enabled {
		a.server = control.NewServer(a,
			control.WithPort(settings.Control.Port),
			control.WithErrorCallback(a.eng.ReportError),
		)
		go func() {
			if err := a.server.Run(); err != nil {
				a.eng.ReportError(fmt.Errorf("control server: %w", err))
			}
		}()
		defer a.server.Close()
	}

	names := preset.Names()
	if len(names) == 0 {
		engine.Logger().Error("no presets registered")
		os.Exit(1)
	}
	if err := a.loadPreset(names[0]); err != nil {
		engine.Logger().Error("initial preset failed", "error", err)
		os.Exit(1)
	}

	a.eng.SetResizeCallback(func(width, height int) {
		a.r.Resize(width, height)
	})
	a.eng.SetTickCallback(a.tick)
	a.eng.SetRenderCallback(a.render)
	a.setupInput()

	fmt.Println("marcher: raymarched shader design tool")
	fmt.Println("  drag: orbit   scroll: zoom   shift+scroll: page scroll")
	fmt.Println("  1-9: preset   T: next preset   B: select param   Q/E: nudge param")
	fmt.Println("  P: screenshot   R: record   space: resume after error   esc: quit")

	a.eng.Run()
}

// loadPreset assembles the named preset, repacks the session, registers the
// pipeline, and recreates the uniform buffer and bind group against the new
// program's layout. Clears any render halt on success.
func (a *app) loadPreset(name string) error {
	p, ok := preset.Get(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}

	program, err := p.Program()
	if err != nil {
		return fmt.Errorf("preset %q failed to assemble: %w", name, err)
	}

	if err := a.sess.LoadPreset(p); err != nil {
		return fmt.Errorf("preset %q rejected: %w", name, err)
	}

	pipe := pipeline.NewPipeline(program)
	if err := a.r.RegisterPipelines(pipe); err != nil {
		return fmt.Errorf("preset %q pipeline: %w", name, err)
	}

	if a.provider.Texture(bindingTexture) == nil {
		if err := a.r.InitTextureView(a.provider, bindingTexture, whiteTexture()); err != nil {
			return fmt.Errorf("default texture: %w", err)
		}
		if err := a.r.InitSampler(a.provider, bindingSampler, common.SamplerStagingData{}); err != nil {
			return fmt.Errorf("default sampler: %w", err)
		}
	}

	// The new program may pack a different uniform block size, so the old
	// buffer and bind group layout cannot be reused. Drop them and let
	// InitBindGroup recreate both against the new descriptor; the texture
	// and sampler survive and get rebound.
	a.provider.InvalidateLayout()
	if err := a.r.InitBindGroup(a.provider, program.BindGroupLayoutDescriptor(), nil, nil); err != nil {
		return fmt.Errorf("preset %q bind group: %w", name, err)
	}

	a.mu.Lock()
	previous := a.activeKey
	a.activeKey = program.Key()
	a.paramIndex = 0
	a.mu.Unlock()

	if previous != "" && previous != program.Key() {
		a.r.ReleasePipeline(previous)
	}

	// A fresh program replaces whatever frame state was rejected.
	a.eng.ResumeRender()
	engine.Logger().Info("preset loaded", "preset", name)
	return nil
}

// render drives one frame. While a recording is active the recorder owns
// frame pacing and the camera; otherwise the wall clock drives the session.
func (a *app) render(_ float32) error {
	a.mu.Lock()
	wantStill := a.pendingScreenshot
	wantToggle := a.pendingRecordToggle
	a.pendingScreenshot = false
	a.pendingRecordToggle = false
	a.mu.Unlock()
	if wantStill {
		a.captureStill()
	}
	if wantToggle {
		a.toggleRecording()
	}

	if a.recorder.Active() {
		if err := a.recorder.RenderFrame(func() error {
			return a.renderFrame(uint32(a.settings.Export.Width), uint32(a.settings.Export.Height))
		}); err != nil {
			return err
		}
		if a.recorder.Done() {
			path, err := a.recorder.Stop()
			if err != nil {
				a.eng.ReportError(err)
			} else {
				engine.Logger().Info("recording written", "path", path)
			}
		}
		return nil
	}

	return a.renderFrame(uint32(a.eng.Window().Width()), uint32(a.eng.Window().Height()))
}

// renderFrame builds the uniform buffer for one frame and submits it.
func (a *app) renderFrame(width, height uint32) error {
	// A preset swap may be rebuilding the bind group on the tick goroutine.
	if a.provider.BindGroup() == nil {
		return nil
	}

	if a.capture != nil {
		a.sess.SetAudioBands(a.capture.Analyzer().Bands())
	}

	elapsed := float32(time.Since(a.startTime).Seconds())
	a.mu.Lock()
	delta := elapsed - a.lastElapsed
	a.lastElapsed = elapsed
	key := a.activeKey
	a.mu.Unlock()

	words, err := a.sess.BuildFrame(session.FrameInput{
		Width:   width,
		Height:  height,
		Elapsed: elapsed,
		Delta:   delta,
	})
	if err != nil {
		return err
	}

	a.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: a.provider, Binding: bindingUniforms, Offset: 0, Data: common.SliceToBytes(words)},
	})

	if err := a.r.BeginFrame(); err != nil {
		return err
	}
	if err := a.r.Draw(key, a.provider); err != nil {
		a.r.EndFrame()
		return err
	}
	a.r.EndFrame()
	a.r.Present()
	return nil
}

// tick applies queued edits between frames and broadcasts state once a second.
func (a *app) tick(_ float32) {
	for {
		select {
		case edit := <-a.edits:
			edit()
		default:
			if a.server != nil && a.server.ClientCount() > 0 {
				a.maybeBroadcast()
			}
			return
		}
	}
}

// maybeBroadcast rate-limits state broadcasts to one per second.
func (a *app) maybeBroadcast() {
	a.mu.Lock()
	due := time.Since(a.lastBroadcast) >= time.Second
	if due {
		a.lastBroadcast = time.Now()
	}
	a.mu.Unlock()
	if due {
		a.server.Broadcast(a.Snapshot())
	}
}

// EnqueueSetParam queues a parameter edit from the control server.
func (a *app) EnqueueSetParam(id string, value [3]float32) {
	a.enqueue(func() {
		if err := a.sess.SetParam(id, value); err != nil {
			a.eng.ReportError(err)
		}
	})
}

// EnqueueLoadPreset queues a preset change from the control server.
func (a *app) EnqueueLoadPreset(name string) {
	a.enqueue(func() {
		if err := a.loadPreset(name); err != nil {
			a.eng.ReportError(err)
		}
	})
}

// Snapshot reports current session state for control clients.
func (a *app) Snapshot() control.StateSnapshot {
	return control.NewSnapshot(a.sess.PresetName(), a.sess.Params(), a.eng.Profiler().FPS())
}

// enqueue adds an edit to the between-frames queue, dropping it with a
// report if the queue is full.
func (a *app) enqueue(edit func()) {
	select {
	case a.edits <- edit:
	default:
		a.eng.ReportError(fmt.Errorf("edit queue full, edit dropped"))
	}
}

// setupInput wires mouse, keyboard, scroll, and file-drop handling.
func (a *app) setupInput() {
	win := a.eng.Window()

	var dragging bool
	var lastX, lastY int32

	win.SetMouseDownCallback(func(x, y int32) {
		dragging = true
		lastX, lastY = x, y
	})
	win.SetMouseUpCallback(func(_, _ int32) {
		dragging = false
	})
	win.SetMouseMoveCallback(func(x, y int32) {
		width, height := win.Width(), win.Height()
		if width > 0 && height > 0 {
			a.sess.SetPointer(float32(x)/float32(width), float32(y)/float32(height))
		}
		if dragging {
			a.cam.Drag(float32(x-lastX), float32(y-lastY))
			lastX, lastY = x, y
		}
	})

	win.SetScrollCallback(func(delta float32) {
		a.mu.Lock()
		shift := a.shiftHeld
		a.mu.Unlock()
		if shift {
			a.mu.Lock()
			a.scrollProgress = clamp01(a.scrollProgress + delta*0.05)
			progress := a.scrollProgress
			a.mu.Unlock()
			a.sess.SetScrollProgress(progress)
			return
		}
		a.cam.Zoom(delta)
	})

	win.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyLeftShift, common.KeyRightShift:
			a.mu.Lock()
			a.shiftHeld = true
			a.mu.Unlock()
		case common.KeySpace:
			a.eng.ResumeRender()
		case common.KeyT:
			a.enqueue(func() { a.cyclePreset() })
		case common.KeyB:
			a.enqueue(func() { a.cycleParam() })
		case common.KeyQ:
			a.enqueue(func() { a.nudgeParam(-1) })
		case common.KeyE:
			a.enqueue(func() { a.nudgeParam(1) })
		case common.KeyP:
			a.enqueue(func() { a.screenshot() })
		case common.KeyR:
			a.mu.Lock()
			a.pendingRecordToggle = true
			a.mu.Unlock()
		default:
			if keyCode >= common.Key1 && keyCode <= common.Key9 {
				index := int(keyCode - common.Key1)
				a.enqueue(func() { a.selectPreset(index) })
			}
		}
	})
	win.SetKeyUpCallback(func(keyCode uint32) {
		if keyCode == common.KeyLeftShift || keyCode == common.KeyRightShift {
			a.mu.Lock()
			a.shiftHeld = false
			a.mu.Unlock()
		}
	})

	win.SetFileDropCallback(func(paths []string) {
		if len(paths) == 0 {
			return
		}
		path := paths[0]
		a.enqueue(func() { a.loadTexture(path) })
	})
}

// cyclePreset advances to the next preset in sorted order.
func (a *app) cyclePreset() {
	names := preset.Names()
	current := a.sess.PresetName()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := a.loadPreset(next); err != nil {
		a.eng.ReportError(err)
	}
}

// selectPreset loads the preset at the given sorted index, if it exists.
func (a *app) selectPreset(index int) {
	names := preset.Names()
	if index < 0 || index >= len(names) {
		return
	}
	if err := a.loadPreset(names[index]); err != nil {
		a.eng.ReportError(err)
	}
}

// cycleParam advances the parameter targeted by Q/E nudges.
func (a *app) cycleParam() {
	params := a.sess.Params()
	if len(params) == 0 {
		return
	}
	a.mu.Lock()
	a.paramIndex = (a.paramIndex + 1) % len(params)
	selected := params[a.paramIndex]
	a.mu.Unlock()
	engine.Logger().Info("param selected", "id", selected.ID, "value", selected.Value)
}

// nudgeParam steps the selected parameter by its slider step, clamped to
// its declared range.
func (a *app) nudgeParam(direction float32) {
	params := a.sess.Params()
	if len(params) == 0 {
		return
	}
	a.mu.Lock()
	if a.paramIndex >= len(params) {
		a.paramIndex = 0
	}
	p := params[a.paramIndex]
	a.mu.Unlock()

	step := p.Step
	if step == 0 {
		step = (p.Max - p.Min) / 100
	}
	value := p.Value
	for i := range value {
		value[i] += direction * step
		if value[i] < p.Min {
			value[i] = p.Min
		}
		if value[i] > p.Max {
			value[i] = p.Max
		}
	}
	if err := a.sess.SetParam(p.ID, value); err != nil {
		a.eng.ReportError(err)
	}
}

// screenshot requests a still; the render loop performs the capture so GPU
// work never runs concurrently with a frame in flight.
func (a *app) screenshot() {
	a.mu.Lock()
	a.pendingScreenshot = true
	a.mu.Unlock()
}

// captureStill runs on the render goroutine.
func (a *app) captureStill() {
	path, err := a.still.Capture(func() error {
		return a.renderFrame(uint32(a.settings.Export.Width), uint32(a.settings.Export.Height))
	})
	if err != nil {
		a.eng.ReportError(err)
		return
	}
	engine.Logger().Info("screenshot written", "path", path)
}

// toggleRecording starts a recording, or stops one early.
// Runs on the render goroutine so capture setup never overlaps a frame.
func (a *app) toggleRecording() {
	if a.recorder.Active() {
		path, err := a.recorder.Stop()
		if err != nil {
			a.eng.ReportError(err)
			return
		}
		engine.Logger().Info("recording written", "path", path)
		return
	}
	if err := a.recorder.Start(); err != nil {
		a.eng.ReportError(err)
	}
}

// loadTexture decodes a dropped image file and uploads it as the preset
// texture, rebuilding the bind group.
func (a *app) loadTexture(path string) {
	staging, err := common.LoadTexture(path)
	if err != nil {
		a.eng.ReportError(fmt.Errorf("texture drop %q: %w", path, err))
		return
	}
	if err := a.r.InitTextureView(a.provider, bindingTexture, staging); err != nil {
		a.eng.ReportError(err)
		return
	}

	p, ok := preset.Get(a.sess.PresetName())
	if !ok {
		return
	}
	program, err := p.Program()
	if err != nil {
		a.eng.ReportError(err)
		return
	}
	if err := a.r.InitBindGroup(a.provider, program.BindGroupLayoutDescriptor(), nil, nil); err != nil {
		a.eng.ReportError(err)
		return
	}
	engine.Logger().Info("texture loaded", "path", path)
}

// whiteTexture returns a 1x1 opaque white texture for presets before any
// image has been dropped in.
func whiteTexture() common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
