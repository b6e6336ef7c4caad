// Package engine drives a widget tree on a single UI goroutine and paints
// each changed frame to a writer.
//
// Background work hands results back through [Engine.Dispatch] (registered
// with the platform package while [Engine.Run] is active). Each frame drains
// the dispatch queue, flushes dirty builds and repaints the tree onto a
// [rendering.Canvas].
package engine

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/log"
	"github.com/go-drift/postboard/pkg/platform"
	"github.com/go-drift/postboard/pkg/rendering"
)

// DefaultColumns is the canvas width used when Options.Columns is zero.
const DefaultColumns = 80

const clearScreen = "\x1b[H\x1b[2J"

// Options configures an Engine.
type Options struct {
	// Columns is the canvas width in terminal cells.
	Columns int
	// Color enables ANSI colour in painted frames.
	Color bool
	// ClearScreen writes a clear-screen sequence before each frame.
	ClearScreen bool
	// Output receives painted frames. Nil discards them.
	Output io.Writer
	// TraceCapacity is the number of frame samples kept for diagnostics.
	TraceCapacity int
	// RuntimeSampleInterval is how often Run records runtime stats. Zero
	// uses five seconds.
	RuntimeSampleInterval time.Duration
}

// Engine owns the root element and runs frames.
type Engine struct {
	opts  Options
	app   core.Widget
	owner *core.BuildOwner

	dispatchMu    sync.Mutex
	dispatchQueue []func()
	wake          chan struct{}
	pendingFrame  atomic.Bool

	// frameLock guards root and lastFrame.
	frameLock sync.Mutex
	root      core.Element
	lastFrame string
	frames    atomic.Int64

	trace   *FrameTraceBuffer
	runtime *RuntimeSampleBuffer
}

// New creates an engine for app. The tree is mounted on the first frame.
func New(app core.Widget, opts Options) *Engine {
	if opts.Columns <= 0 {
		opts.Columns = DefaultColumns
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	e := &Engine{
		opts:    opts,
		app:     app,
		owner:   core.NewBuildOwner(),
		wake:    make(chan struct{}, 1),
		trace:   NewFrameTraceBuffer(opts.TraceCapacity, 0),
		runtime: NewRuntimeSampleBuffer(0, opts.RuntimeSampleInterval),
	}
	e.owner.OnNeedsFrame = e.RequestFrame
	return e
}

// Dispatch schedules a callback to run on the UI goroutine during the next
// frame. Safe to call from any goroutine.
func (e *Engine) Dispatch(callback func()) {
	if callback == nil {
		return
	}
	e.dispatchMu.Lock()
	e.dispatchQueue = append(e.dispatchQueue, callback)
	e.dispatchMu.Unlock()
	e.signal()
}

// RequestFrame schedules a repaint.
func (e *Engine) RequestFrame() {
	e.pendingFrame.Store(true)
	e.signal()
}

func (e *Engine) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) drainDispatchQueue() []func() {
	e.dispatchMu.Lock()
	callbacks := e.dispatchQueue
	e.dispatchQueue = nil
	e.dispatchMu.Unlock()
	return callbacks
}

// NeedsFrame reports whether a frame has work to do.
func (e *Engine) NeedsFrame() bool {
	e.dispatchMu.Lock()
	hasCallbacks := len(e.dispatchQueue) > 0
	e.dispatchMu.Unlock()
	return hasCallbacks || e.pendingFrame.Load() || e.owner.NeedsWork()
}

// Run registers the engine as the platform dispatcher and runs frames until
// ctx is cancelled. The tree is unmounted before Run returns, which disposes
// every state and cancels their contexts.
func (e *Engine) Run(ctx context.Context) error {
	platform.RegisterDispatch(e.Dispatch)
	defer platform.RegisterDispatch(nil)
	defer e.Stop()

	log.D.F("engine started, %d columns", e.opts.Columns)
	go sampleRuntime(ctx, e.runtime)
	e.StepFrame()
	for {
		select {
		case <-ctx.Done():
			log.D.Ln("engine stopping")
			return nil
		case <-e.wake:
			for e.NeedsFrame() {
				e.StepFrame()
			}
		}
	}
}

// StepFrame runs one frame: mount, dispatch, build and paint. Must be called
// from the UI goroutine. Returns true if a new frame was written.
func (e *Engine) StepFrame() bool {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()

	start := time.Now()
	var sample FrameSample
	sample.Timestamp = start.UnixMilli()

	phase := time.Now()
	mounted := false
	if e.root == nil && e.app != nil {
		e.root = core.MountRoot(e.app, e.owner)
		mounted = true
	}
	callbacks := e.drainDispatchQueue()
	for _, callback := range callbacks {
		callback()
	}
	sample.Counts.Callbacks = len(callbacks)
	sample.Phases.DispatchMs = durationToMillis(time.Since(phase))

	phase = time.Now()
	e.owner.FlushBuild()
	sample.Phases.BuildMs = durationToMillis(time.Since(phase))

	repaint := e.pendingFrame.Swap(false) || mounted
	painted := false
	if repaint && e.root != nil {
		phase = time.Now()
		canvas := rendering.NewCanvas(e.opts.Columns, e.opts.Color)
		rendering.PaintTree(e.root, canvas)
		frame := canvas.String()
		if frame != e.lastFrame {
			e.lastFrame = frame
			e.write(canvas)
			painted = true
			e.frames.Add(1)
		}
		sample.Counts.Lines = len(canvas.Lines())
		sample.Counts.WidgetNodeCount = countWidgetTree(e.root)
		sample.Phases.PaintMs = durationToMillis(time.Since(phase))
	}
	sample.Painted = painted

	elapsed := time.Since(start)
	sample.FrameMs = durationToMillis(elapsed)
	e.trace.Add(sample, elapsed)
	return painted
}

func (e *Engine) write(canvas *rendering.Canvas) {
	if e.opts.ClearScreen {
		io.WriteString(e.opts.Output, clearScreen)
	}
	if _, err := canvas.WriteTo(e.opts.Output); err != nil {
		log.W.F("frame write failed: %v", err)
		return
	}
	if !e.opts.ClearScreen {
		io.WriteString(e.opts.Output, "\n")
	}
}

// Stop unmounts the tree. The next frame remounts it.
func (e *Engine) Stop() {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	if e.root != nil {
		e.root.Unmount()
		e.root = nil
	}
}

// Root returns the mounted root element, or nil before the first frame.
// The element tree must only be walked on the UI goroutine.
func (e *Engine) Root() core.Element {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	return e.root
}

// LastFrame returns the text of the most recently painted frame without
// colour codes.
func (e *Engine) LastFrame() string {
	e.frameLock.Lock()
	defer e.frameLock.Unlock()
	return e.lastFrame
}

// Frames returns the number of frames written.
func (e *Engine) Frames() int {
	return int(e.frames.Load())
}

// RuntimeStats returns the runtime sample buffer filled while Run is active.
func (e *Engine) RuntimeStats() *RuntimeSampleBuffer {
	return e.runtime
}

// Trace returns the frame sample buffer.
func (e *Engine) Trace() *FrameTraceBuffer {
	return e.trace
}
