package tracking

import "fmt"

// Point is a 2D image coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in image coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FaceState is the engine's lifecycle state for one face slot.
type FaceState int

const (
	NotTracking FaceState = iota
	FaceDetection
	FaceTrackingStart
	FaceTracking
	FaceReset
)

func (s FaceState) String() string {
	switch s {
	case NotTracking:
		return "NOT_TRACKING"
	case FaceDetection:
		return "FACE_DETECTION"
	case FaceTrackingStart:
		return "FACE_TRACKING_START"
	case FaceTracking:
		return "FACE_TRACKING"
	case FaceReset:
		return "RESET"
	default:
		return fmt.Sprintf("FaceState(%d)", int(s))
	}
}

// IsTracking reports whether the face has usable geometry this frame.
// FACE_TRACKING_START and FACE_TRACKING are treated identically.
func (s FaceState) IsTracking() bool {
	return s == FaceTrackingStart || s == FaceTracking
}

// Face is one tracked face slot as reported by the engine.
type Face struct {
	State FaceState
	// Vertices are the facial feature points.
	Vertices []Point
	// Triangles indexes Vertices in groups of three.
	Triangles []int
}

// Mode selects which pipelines the engine runs.
type Mode int

const (
	// ModeFaceDetection runs detection only.
	ModeFaceDetection Mode = iota
	// ModeFaceTracking runs face tracking and point tracking together.
	ModeFaceTracking
	// ModePointTracking skips face detection and tracking entirely.
	ModePointTracking
)

func (m Mode) String() string {
	switch m {
	case ModeFaceDetection:
		return "face_detection"
	case ModeFaceTracking:
		return "face_tracking"
	case ModePointTracking:
		return "point_tracking"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// OpticalFlowParams configures the engine's pyramidal optical flow.
type OpticalFlowParams struct {
	PatchSize     int     // must be odd
	PyramidLevels int
	MaxIterations int
	MaxError      float64
}

// DefaultOpticalFlowParams returns the engine defaults: a 21px patch,
// 4 pyramid levels, 50 iterations and an error threshold of 0.0006.
func DefaultOpticalFlowParams() OpticalFlowParams {
	return OpticalFlowParams{
		PatchSize:     21,
		PyramidLevels: 4,
		MaxIterations: 50,
		MaxError:      0.0006,
	}
}
