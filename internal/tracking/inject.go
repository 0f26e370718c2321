package tracking

// InjectionPolicy expands one click into the points to start tracking.
type InjectionPolicy interface {
	Expand(center Point) []Point
}

const (
	// DefaultGridWidth is the side of the square injected around a click.
	DefaultGridWidth = 60.0
	// DefaultGridStep is the spacing between injected points.
	DefaultGridStep = 6.0
)

// GridPolicy fills a square of side Width around the click with points
// every Step pixels. Both axes are half-open: [c-Width/2, c+Width/2), so the
// defaults give a 10x10 grid with nothing on the right or bottom edge.
type GridPolicy struct {
	Width float64
	Step  float64
}

// DefaultGridPolicy returns the 60px / 6px grid.
func DefaultGridPolicy() GridPolicy {
	return GridPolicy{Width: DefaultGridWidth, Step: DefaultGridStep}
}

// Expand returns the grid in row-major order (y outer, x inner).
// A non-positive Step yields no points.
func (g GridPolicy) Expand(center Point) []Point {
	if g.Step <= 0 {
		return nil
	}

	half := g.Width * 0.5
	xStart := center.X - half
	yStart := center.Y - half

	// Offsets are bounded by Width so the grid size does not depend on the
	// click position.
	var points []Point
	for j := 0; float64(j)*g.Step < g.Width; j++ {
		y := yStart + float64(j)*g.Step
		for i := 0; float64(i)*g.Step < g.Width; i++ {
			points = append(points, Point{X: xStart + float64(i)*g.Step, Y: y})
		}
	}
	return points
}

// SinglePointPolicy tracks exactly the clicked location.
type SinglePointPolicy struct{}

// Expand returns center alone.
func (SinglePointPolicy) Expand(center Point) []Point {
	return []Point{center}
}
