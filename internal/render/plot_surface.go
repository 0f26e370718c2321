// Package render rasterises tracking frames with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/pointtrack/internal/tracking"
)

// PlotSurface implements tracking.Surface on a gonum/plot canvas sized to
// the image. Image coordinates grow downwards, so y is flipped on the way in.
type PlotSurface struct {
	Width  float64
	Height float64

	plot  *plot.Plot
	items int
	err   error
}

// NewPlotSurface creates an empty surface for a width x height image.
func NewPlotSurface(width, height float64) *PlotSurface {
	s := &PlotSurface{Width: width, Height: height}
	s.Clear()
	return s
}

// Clear discards everything drawn so far.
func (s *PlotSurface) Clear() {
	p := plot.New()
	p.HideAxes()
	p.BackgroundColor = color.Black
	s.plot = p
	s.items = 0
	s.err = nil
}

// SetTitle labels the current frame.
func (s *PlotSurface) SetTitle(title string) {
	s.plot.Title.Text = title
	s.plot.Title.TextStyle.Color = color.White
}

// Items returns the number of plot elements added since the last Clear.
func (s *PlotSurface) Items() int {
	return s.items
}

// Err returns the first error hit while building plot elements since the
// last Clear.
func (s *PlotSurface) Err() error {
	return s.err
}

func (s *PlotSurface) xy(p tracking.Point) plotter.XY {
	return plotter.XY{X: p.X, Y: s.Height - p.Y}
}

func (s *PlotSurface) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (s *PlotSurface) add(p plot.Plotter) {
	s.plot.Add(p)
	s.items++
}

// DrawRects outlines (or fills) each rectangle.
func (s *PlotSurface) DrawRects(rects []tracking.Rect, style tracking.Style) {
	for _, r := range rects {
		s.drawPolygon([]tracking.Point{
			{X: r.X, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y},
			{X: r.X + r.Width, Y: r.Y + r.Height},
			{X: r.X, Y: r.Y + r.Height},
		}, style)
	}
}

// DrawTriangles draws each index triple of triangles as a closed polygon.
// Trailing indices that do not form a whole triangle, or that fall outside
// vertices, are skipped.
func (s *PlotSurface) DrawTriangles(vertices []tracking.Point, triangles []int, style tracking.Style) {
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		if !inRange(a, vertices) || !inRange(b, vertices) || !inRange(c, vertices) {
			continue
		}
		s.drawPolygon([]tracking.Point{vertices[a], vertices[b], vertices[c]}, style)
	}
}

func inRange(i int, vertices []tracking.Point) bool {
	return i >= 0 && i < len(vertices)
}

// DrawVertices draws every vertex as a glyph of the given radius.
func (s *PlotSurface) DrawVertices(vertices []tracking.Point, radius float64, style tracking.Style) {
	if len(vertices) == 0 {
		return
	}
	xys := make(plotter.XYs, len(vertices))
	for i, v := range vertices {
		xys[i] = s.xy(v)
	}
	s.drawGlyphs(xys, radius, style)
}

// DrawPoint draws a single glyph.
func (s *PlotSurface) DrawPoint(p tracking.Point, radius float64, style tracking.Style) {
	s.drawGlyphs(plotter.XYs{s.xy(p)}, radius, style)
}

func (s *PlotSurface) drawPolygon(corners []tracking.Point, style tracking.Style) {
	xys := make(plotter.XYs, 0, len(corners)+1)
	for _, c := range corners {
		xys = append(xys, s.xy(c))
	}

	if style.Fill {
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			s.fail(fmt.Errorf("polygon: %w", err))
			return
		}
		poly.Color = toColor(style)
		poly.LineStyle.Width = 0
		s.add(poly)
		return
	}

	xys = append(xys, xys[0])
	line, err := plotter.NewLine(xys)
	if err != nil {
		s.fail(fmt.Errorf("line: %w", err))
		return
	}
	line.Color = toColor(style)
	line.Width = vg.Points(style.LineWidth)
	s.add(line)
}

func (s *PlotSurface) drawGlyphs(xys plotter.XYs, radius float64, style tracking.Style) {
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		s.fail(fmt.Errorf("scatter: %w", err))
		return
	}
	sc.GlyphStyle.Color = toColor(style)
	sc.GlyphStyle.Radius = vg.Points(radius)
	if style.Fill {
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
	} else {
		sc.GlyphStyle.Shape = draw.RingGlyph{}
	}
	s.add(sc)
}

// Save writes the current frame to path. The format follows the file
// extension (.png, .svg, .pdf, ...).
func (s *PlotSurface) Save(path string) error {
	if s.err != nil {
		return s.err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	// Axes are pinned after all elements are added so out-of-frame points
	// do not rescale the image.
	s.plot.X.Min, s.plot.X.Max = 0, s.Width
	s.plot.Y.Min, s.plot.Y.Max = 0, s.Height

	if err := s.plot.Save(vg.Length(s.Width), vg.Length(s.Height), path); err != nil {
		return fmt.Errorf("failed to save frame %s: %w", path, err)
	}
	return nil
}

// toColor converts a 0xRRGGBB colour and alpha in [0,1] to an NRGBA colour.
func toColor(style tracking.Style) color.NRGBA {
	alpha := math.Max(0, math.Min(1, style.Alpha))
	return color.NRGBA{
		R: uint8(style.Color >> 16),
		G: uint8(style.Color >> 8),
		B: uint8(style.Color),
		A: uint8(math.Round(alpha * 255)),
	}
}
