package tracking

import (
	"reflect"

	"github.com/banshee-data/pointtrack/internal/monitoring"
)

// Banner is emitted once when a Controller is constructed.
const Banner = "point tracking: click on a face to add a bunch of points to track."

// FrameResult is everything read back from the engine for one frame.
// Slices alias engine storage and are only valid until the next OnFrame.
type FrameResult struct {
	Index         uint64
	Injected      int // points drained into the engine before this update
	DetectedFaces []Rect
	MergedFaces   []Rect
	Faces         []Face
	Points        []Point
	Valid         []bool
	Notified      bool // the tracked count changed this frame
}

// IsValid returns the validity flag for point i. A missing flag counts as
// invalid.
func (r FrameResult) IsValid(i int) bool {
	return i < len(r.Valid) && r.Valid[i]
}

// ValidCount returns the number of points flagged valid.
func (r FrameResult) ValidCount() int {
	n := 0
	for i := range r.Points {
		if r.IsValid(i) {
			n++
		}
	}
	return n
}

// TrackingFaces returns the number of faces with usable geometry.
func (r FrameResult) TrackingFaces() int {
	n := 0
	for _, f := range r.Faces {
		if f.State.IsTracking() {
			n++
		}
	}
	return n
}

// Options configures a Controller. Zero values take the defaults.
type Options struct {
	Policy      InjectionPolicy
	OpticalFlow *OpticalFlowParams
	// KeepInvalidPoints leaves point removal to the caller instead of the
	// engine.
	KeepInvalidPoints bool
	Styles            *RenderStyles
	// Notify receives count-change notifications; nil uses monitoring.Logf.
	Notify func(msg string)
}

// Controller owns the per-frame coordination state: the pending buffer, the
// last observed point count and the collaborators it drives.
type Controller struct {
	engine   Engine
	surface  Surface
	policy   InjectionPolicy
	pending  *PendingBuffer
	reporter *CountReporter
	selector *RenderSelector
	sinks    []FrameSink
	frames   uint64
}

// NewController configures engine for simultaneous face and point tracking
// and returns a Controller driving it. surface may be nil for headless runs.
func NewController(engine Engine, surface Surface, opts Options) *Controller {
	policy := opts.Policy
	if policy == nil {
		policy = DefaultGridPolicy()
	}
	flow := DefaultOpticalFlowParams()
	if opts.OpticalFlow != nil {
		flow = *opts.OpticalFlow
	}
	styles := DefaultRenderStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}
	if isNilInterface(surface) {
		surface = nil
	}

	engine.SetMode(ModeFaceTracking)
	engine.SetOpticalFlowParams(flow)
	engine.SetDiscardInvalidPoints(!opts.KeepInvalidPoints)

	monitoring.Logf("%s", Banner)
	monitoring.Diagf("[Controller] mode=%s flow=%+v discard=%v policy=%T",
		ModeFaceTracking, flow, !opts.KeepInvalidPoints, policy)

	return &Controller{
		engine:   engine,
		surface:  surface,
		policy:   policy,
		pending:  &PendingBuffer{},
		reporter: NewCountReporter(opts.Notify),
		selector: NewRenderSelector(styles),
	}
}

// AddSink registers a FrameSink. Nil sinks are ignored.
func (c *Controller) AddSink(s FrameSink) {
	if isNilInterface(s) {
		return
	}
	c.sinks = append(c.sinks, s)
}

// Attach registers the controller's click handler with src.
func (c *Controller) Attach(src InteractionSource) {
	src.OnClick(c.HandleClick)
}

// HandleClick expands p with the injection policy and queues the result for
// the next frame. It never touches the engine.
func (c *Controller) HandleClick(p Point) {
	points := c.policy.Expand(p)
	c.pending.Append(points)
	monitoring.Tracef("[Controller] click at (%.1f, %.1f) queued %d points", p.X, p.Y, len(points))
}

// Pending returns the number of points waiting for the next frame.
func (c *Controller) Pending() int {
	return c.pending.Len()
}

// Frames returns the number of frames processed so far.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// TrackedCount returns the last tracked point count seen by the reporter.
func (c *Controller) TrackedCount() int {
	return c.reporter.Last()
}

// OnFrame runs one frame: drain pending points into the engine, update the
// engine once, read back its results, render and report. Points queued after
// the drain wait for the next frame.
func (c *Controller) OnFrame() FrameResult {
	// New points must reach the engine strictly before Update.
	points := c.pending.DrainAll()
	if len(points) > 0 {
		c.engine.AddPoints(points)
	}

	c.engine.Update()

	result := FrameResult{
		Index:         c.frames,
		Injected:      len(points),
		DetectedFaces: c.engine.DetectedFaces(),
		MergedFaces:   c.engine.MergedFaces(),
		Faces:         c.engine.Faces(),
		Points:        c.engine.TrackedPoints(),
		Valid:         c.engine.TrackedPointValidity(),
	}
	c.frames++

	if c.surface != nil {
		c.selector.Render(c.surface, result)
	}

	result.Notified = c.reporter.Observe(len(result.Points))

	monitoring.Tracef("[Controller] frame %d: injected=%d points=%d valid=%d faces=%d tracking=%d",
		result.Index, result.Injected, len(result.Points), result.ValidCount(),
		len(result.Faces), result.TrackingFaces())

	for _, sink := range c.sinks {
		if err := sink.RecordFrame(result); err != nil {
			monitoring.Opsf("[Controller] frame %d: sink %T failed: %v", result.Index, sink, err)
		}
	}

	return result
}

// isNilInterface checks if an interface value is nil or contains a nil pointer.
func isNilInterface(i interface{}) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
