package tracking

// EngineSetup is the one-time configuration surface of a tracking engine.
type EngineSetup interface {
	SetMode(mode Mode)
	SetOpticalFlowParams(params OpticalFlowParams)
	// SetDiscardInvalidPoints makes the engine drop points it can no longer
	// track instead of leaving removal to the caller.
	SetDiscardInvalidPoints(discard bool)
}

// PointInput accepts new points to track. Merge order and collision handling
// are the engine's business.
type PointInput interface {
	AddPoints(points []Point)
}

// Updater advances detection and tracking by exactly one frame.
type Updater interface {
	Update()
}

// Results are the read-only accessors for the current frame.
// Slices returned here are only valid until the next Update.
type Results interface {
	DetectedFaces() []Rect
	MergedFaces() []Rect
	Faces() []Face
	TrackedPoints() []Point
	// TrackedPointValidity is index-aligned with TrackedPoints.
	TrackedPointValidity() []bool
}

// Engine is the full tracking engine as driven by the Controller.
type Engine interface {
	EngineSetup
	PointInput
	Updater
	Results
}

// Surface is a stateless drawing canvas.
type Surface interface {
	Clear()
	DrawRects(rects []Rect, style Style)
	DrawTriangles(vertices []Point, triangles []int, style Style)
	DrawVertices(vertices []Point, radius float64, style Style)
	DrawPoint(p Point, radius float64, style Style)
}

// InteractionSource delivers primary-button clicks in image coordinates.
type InteractionSource interface {
	OnClick(handler func(p Point))
}

// FrameSink receives each frame's results after rendering.
type FrameSink interface {
	RecordFrame(result FrameResult) error
}
