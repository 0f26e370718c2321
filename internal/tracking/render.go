package tracking

// Style is a fixed visual encoding for one kind of draw call.
type Style struct {
	Fill      bool
	LineWidth float64
	Color     uint32 // 0xRRGGBB
	Alpha     float64
}

// RenderStyles are the encodings used by RenderSelector.
type RenderStyles struct {
	DetectedFace Style
	MergedFace   Style
	Mesh         Style
	Vertices     Style
	VertexRadius float64
	ValidPoint   Style
	InvalidPoint Style
	PointRadius  float64
}

// DefaultRenderStyles: thin light-blue raw detections, thick yellow merged
// faces, translucent blue mesh, green valid and red invalid points.
func DefaultRenderStyles() RenderStyles {
	return RenderStyles{
		DetectedFace: Style{LineWidth: 1.0, Color: 0x00a1ff, Alpha: 0.5},
		MergedFace:   Style{LineWidth: 2.0, Color: 0xffd200, Alpha: 1.0},
		Mesh:         Style{LineWidth: 1.0, Color: 0x00a0ff, Alpha: 0.4},
		Vertices:     Style{Color: 0x00a0ff, Alpha: 0.4},
		VertexRadius: 2.0,
		ValidPoint:   Style{Color: 0x00ff00, Alpha: 1.0},
		InvalidPoint: Style{Color: 0xff0000, Alpha: 1.0},
		PointRadius:  2.0,
	}
}

// RenderSelector maps one frame's tracking state to draw calls.
type RenderSelector struct {
	Styles RenderStyles
}

// NewRenderSelector returns a selector using styles.
func NewRenderSelector(styles RenderStyles) *RenderSelector {
	return &RenderSelector{Styles: styles}
}

// PointStyle picks the encoding for a tracked point from its validity flag.
func (rs *RenderSelector) PointStyle(valid bool) Style {
	if valid {
		return rs.Styles.ValidPoint
	}
	return rs.Styles.InvalidPoint
}

// Render clears s and draws r: both face rectangle sets, geometry for faces
// that are tracking, then every tracked point.
func (rs *RenderSelector) Render(s Surface, r FrameResult) {
	s.Clear()

	// Raw detections and merged faces are drawn every frame, tracking or not.
	s.DrawRects(r.DetectedFaces, rs.Styles.DetectedFace)
	s.DrawRects(r.MergedFaces, rs.Styles.MergedFace)

	for _, face := range r.Faces {
		if !face.State.IsTracking() {
			continue
		}
		s.DrawTriangles(face.Vertices, face.Triangles, rs.Styles.Mesh)
		s.DrawVertices(face.Vertices, rs.Styles.VertexRadius, rs.Styles.Vertices)
	}

	for i, p := range r.Points {
		s.DrawPoint(p, rs.Styles.PointRadius, rs.PointStyle(r.IsValid(i)))
	}
}
