// Package synthetic provides a deterministic in-process tracking engine and
// scripted interaction source for demos and tests.
//
// The engine is not an optical-flow implementation. It moves every tracked
// point with the same per-frame affine motion as the simulated face, so
// injected points follow the face, slowly drift outward and are reported
// invalid once they leave the image.
package synthetic

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/pointtrack/internal/monitoring"
	"github.com/banshee-data/pointtrack/internal/tracking"
)

// Engine is a synthetic tracking.Engine.
type Engine struct {
	// Image size in pixels; points outside [0,Width)x[0,Height) are invalid.
	Width  float64
	Height float64

	// Face simulation
	DetectFrames int     // frames of raw detection before tracking starts
	LossEvery    int     // 0 disables periodic face loss
	LossFrames   int     // frames the face stays lost each LossEvery cycle
	FaceSize     float64 // side of the detected face rectangle
	Orbit        float64 // radius of the face's circular path around the image centre
	Period       int     // frames per orbit
	Zoom         float64 // per-frame scale about the image centre, 1 keeps points in place
	Jitter       float64 // stddev of raw detection noise in pixels
	Smoothing    float64 // EMA weight of a new detection in the merged face

	rng     *rand.Rand
	mode    tracking.Mode
	flow    tracking.OpticalFlowParams
	discard bool
	frame   int
	visible int // consecutive frames the face has been visible

	queued []tracking.Point
	points []tracking.Point
	valid  []bool

	detected []tracking.Rect
	merged   []tracking.Rect
	faces    []tracking.Face
}

// NewEngine creates an engine for a width x height image seeded with seed.
func NewEngine(width, height float64, seed int64) *Engine {
	return &Engine{
		Width:        width,
		Height:       height,
		DetectFrames: 10,
		FaceSize:     height * 0.4,
		Orbit:        height * 0.1,
		Period:       180,
		Zoom:         1.002,
		Jitter:       3.0,
		Smoothing:    0.3,
		rng:          rand.New(rand.NewSource(seed)),
		mode:         tracking.ModeFaceTracking,
		flow:         tracking.DefaultOpticalFlowParams(),
		discard:      true,
	}
}

// SetMode implements tracking.EngineSetup.
func (e *Engine) SetMode(mode tracking.Mode) {
	e.mode = mode
}

// SetOpticalFlowParams implements tracking.EngineSetup. The parameters are
// stored for inspection only.
func (e *Engine) SetOpticalFlowParams(p tracking.OpticalFlowParams) {
	if p.PatchSize%2 == 0 {
		monitoring.Opsf("[Synthetic] optical flow patch size must be odd, got %d", p.PatchSize)
	}
	e.flow = p
}

// SetDiscardInvalidPoints implements tracking.EngineSetup.
func (e *Engine) SetDiscardInvalidPoints(discard bool) {
	e.discard = discard
}

// Mode returns the configured mode.
func (e *Engine) Mode() tracking.Mode { return e.mode }

// OpticalFlowParams returns the configured optical flow parameters.
func (e *Engine) OpticalFlowParams() tracking.OpticalFlowParams { return e.flow }

// DiscardInvalidPoints reports whether invalid points are dropped.
func (e *Engine) DiscardInvalidPoints() bool { return e.discard }

// AddPoints queues points; they join the tracked set on the next Update.
func (e *Engine) AddPoints(points []tracking.Point) {
	e.queued = append(e.queued, points...)
}

// Update advances the simulation by one frame.
func (e *Engine) Update() {
	e.frame++
	e.updatePoints()
	if e.mode == tracking.ModePointTracking {
		e.detected, e.merged, e.faces = nil, nil, nil
		return
	}
	e.updateFace()
}

func (e *Engine) updatePoints() {
	// Points that were invalid last frame are dropped before tracking.
	kept := make([]tracking.Point, 0, len(e.points)+len(e.queued))
	for i, p := range e.points {
		if e.discard && !e.valid[i] {
			continue
		}
		kept = append(kept, p)
	}

	centre := tracking.Point{X: e.Width / 2, Y: e.Height / 2}
	kept = Transform(Affine(centre, e.angularStep(), e.Zoom), kept)

	// New points start where they were placed and move from the next frame.
	kept = append(kept, e.queued...)
	e.queued = nil

	valid := make([]bool, len(kept))
	for i, p := range kept {
		valid[i] = p.X >= 0 && p.X < e.Width && p.Y >= 0 && p.Y < e.Height
	}
	e.points, e.valid = kept, valid
}

func (e *Engine) angularStep() float64 {
	if e.Period <= 0 {
		return 0
	}
	return 2 * math.Pi / float64(e.Period)
}

func (e *Engine) lost() bool {
	if e.LossEvery <= 0 || e.LossFrames <= 0 {
		return false
	}
	return e.frame%e.LossEvery >= e.LossEvery-e.LossFrames
}

func (e *Engine) updateFace() {
	if e.lost() {
		e.visible = 0
		e.detected, e.merged = nil, nil
		e.faces = []tracking.Face{{State: tracking.NotTracking}}
		return
	}
	e.visible++

	theta := e.angularStep() * float64(e.frame)
	centre := tracking.Point{
		X: e.Width/2 + e.Orbit*math.Cos(theta),
		Y: e.Height/2 + e.Orbit*math.Sin(theta),
	}

	raw := tracking.Rect{
		X:      centre.X - e.FaceSize/2 + e.rng.NormFloat64()*e.Jitter,
		Y:      centre.Y - e.FaceSize/2 + e.rng.NormFloat64()*e.Jitter,
		Width:  e.FaceSize,
		Height: e.FaceSize,
	}
	e.detected = []tracking.Rect{raw}

	if len(e.merged) == 0 {
		e.merged = []tracking.Rect{raw}
	} else {
		m := e.merged[0]
		a := e.Smoothing
		e.merged = []tracking.Rect{{
			X:      m.X + a*(raw.X-m.X),
			Y:      m.Y + a*(raw.Y-m.Y),
			Width:  m.Width + a*(raw.Width-m.Width),
			Height: m.Height + a*(raw.Height-m.Height),
		}}
	}

	state := tracking.NotTracking
	switch {
	case e.mode == tracking.ModeFaceDetection:
	case e.visible == e.DetectFrames+1:
		state = tracking.FaceTrackingStart
	case e.visible > e.DetectFrames+1:
		state = tracking.FaceTracking
	}

	face := tracking.Face{State: state}
	if state.IsTracking() {
		face.Vertices, face.Triangles = faceMesh(centre, e.FaceSize*0.4, 8)
	}
	e.faces = []tracking.Face{face}
}

// faceMesh returns a ring of n vertices around centre plus the centre itself,
// triangulated as a fan.
func faceMesh(centre tracking.Point, radius float64, n int) ([]tracking.Point, []int) {
	vertices := make([]tracking.Point, 0, n+1)
	vertices = append(vertices, centre)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		vertices = append(vertices, tracking.Point{
			X: centre.X + radius*math.Cos(a),
			Y: centre.Y + radius*math.Sin(a),
		})
	}
	triangles := make([]int, 0, 3*n)
	for i := 1; i <= n; i++ {
		next := i%n + 1
		triangles = append(triangles, 0, i, next)
	}
	return vertices, triangles
}

// DetectedFaces implements tracking.Results.
func (e *Engine) DetectedFaces() []tracking.Rect { return e.detected }

// MergedFaces implements tracking.Results.
func (e *Engine) MergedFaces() []tracking.Rect { return e.merged }

// Faces implements tracking.Results.
func (e *Engine) Faces() []tracking.Face { return e.faces }

// TrackedPoints implements tracking.Results.
func (e *Engine) TrackedPoints() []tracking.Point { return e.points }

// TrackedPointValidity implements tracking.Results.
func (e *Engine) TrackedPointValidity() []bool { return e.valid }

// Affine returns the homogeneous 3x3 transform that rotates by angle and
// scales by scale about centre.
func Affine(centre tracking.Point, angle, scale float64) *mat.Dense {
	c := math.Cos(angle) * scale
	s := math.Sin(angle) * scale
	return mat.NewDense(3, 3, []float64{
		c, -s, centre.X - c*centre.X + s*centre.Y,
		s, c, centre.Y - s*centre.X - c*centre.Y,
		0, 0, 1,
	})
}

// Transform applies the homogeneous transform a to points and returns the
// moved points in a new slice.
func Transform(a mat.Matrix, points []tracking.Point) []tracking.Point {
	n := len(points)
	if n == 0 {
		return points
	}
	p := mat.NewDense(3, n, nil)
	for i, pt := range points {
		p.Set(0, i, pt.X)
		p.Set(1, i, pt.Y)
		p.Set(2, i, 1)
	}
	var q mat.Dense
	q.Mul(a, p)

	moved := make([]tracking.Point, n)
	for i := range moved {
		moved[i] = tracking.Point{X: q.At(0, i), Y: q.At(1, i)}
	}
	return moved
}
