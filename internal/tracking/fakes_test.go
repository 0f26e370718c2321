package tracking

import (
	"fmt"
	"sync"
)

// fakeEngine accepts every added point as valid on the next Update and
// records the order of calls it receives.
type fakeEngine struct {
	mu    sync.Mutex
	calls []string

	mode    Mode
	flow    OpticalFlowParams
	discard bool

	queued   []Point
	points   []Point
	valid    []bool
	faces    []Face
	detected []Rect
	merged   []Rect

	// invalidate marks these indices invalid on the next Update.
	invalidate map[int]bool
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()
}

func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *fakeEngine) SetMode(mode Mode) {
	e.record("SetMode")
	e.mode = mode
}

func (e *fakeEngine) SetOpticalFlowParams(p OpticalFlowParams) {
	e.record("SetOpticalFlowParams")
	e.flow = p
}

func (e *fakeEngine) SetDiscardInvalidPoints(d bool) {
	e.record("SetDiscardInvalidPoints")
	e.discard = d
}

func (e *fakeEngine) AddPoints(points []Point) {
	e.record(fmt.Sprintf("AddPoints(%d)", len(points)))
	e.queued = append(e.queued, points...)
}

func (e *fakeEngine) Update() {
	e.record("Update")
	if e.discard {
		keptP := e.points[:0:0]
		keptV := e.valid[:0:0]
		for i, p := range e.points {
			if e.valid[i] {
				keptP = append(keptP, p)
				keptV = append(keptV, true)
			}
		}
		e.points, e.valid = keptP, keptV
	}
	for range e.queued {
		e.valid = append(e.valid, true)
	}
	e.points = append(e.points, e.queued...)
	e.queued = nil
	for i := range e.valid {
		if e.invalidate[i] {
			e.valid[i] = false
		}
	}
	e.invalidate = nil
}

func (e *fakeEngine) DetectedFaces() []Rect        { return e.detected }
func (e *fakeEngine) MergedFaces() []Rect          { return e.merged }
func (e *fakeEngine) Faces() []Face                { return e.faces }
func (e *fakeEngine) TrackedPoints() []Point       { return e.points }
func (e *fakeEngine) TrackedPointValidity() []bool { return e.valid }

// drawCall is one recorded Surface call.
type drawCall struct {
	Op     string
	Count  int
	Radius float64
	Style  Style
}

// recordingSurface keeps every draw call since the last Clear.
type recordingSurface struct {
	clears int
	calls  []drawCall
}

func (s *recordingSurface) Clear() {
	s.clears++
	s.calls = nil
}

func (s *recordingSurface) DrawRects(rects []Rect, style Style) {
	s.calls = append(s.calls, drawCall{Op: "rects", Count: len(rects), Style: style})
}

func (s *recordingSurface) DrawTriangles(vertices []Point, triangles []int, style Style) {
	s.calls = append(s.calls, drawCall{Op: "triangles", Count: len(triangles) / 3, Style: style})
}

func (s *recordingSurface) DrawVertices(vertices []Point, radius float64, style Style) {
	s.calls = append(s.calls, drawCall{Op: "vertices", Count: len(vertices), Radius: radius, Style: style})
}

func (s *recordingSurface) DrawPoint(p Point, radius float64, style Style) {
	s.calls = append(s.calls, drawCall{Op: "point", Count: 1, Radius: radius, Style: style})
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// failingSink always returns an error.
type failingSink struct{ calls int }

func (f *failingSink) RecordFrame(FrameResult) error {
	f.calls++
	return fmt.Errorf("disk full")
}

// collectingSink keeps a copy of every frame it sees.
type collectingSink struct{ frames []FrameResult }

func (c *collectingSink) RecordFrame(r FrameResult) error {
	c.frames = append(c.frames, r)
	return nil
}

// clickSource is an InteractionSource driven directly by tests.
type clickSource struct{ handler func(Point) }

func (c *clickSource) OnClick(h func(Point)) { c.handler = h }

func (c *clickSource) Click(x, y float64) {
	if c.handler != nil {
		c.handler(Point{X: x, Y: y})
	}
}

// messages collects notifications.
type messages struct{ got []string }

func (m *messages) notify(msg string) { m.got = append(m.got, msg) }
