package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridPolicy_Defaults(t *testing.T) {
	t.Parallel()

	g := DefaultGridPolicy()
	assert.Equal(t, 60.0, g.Width)
	assert.Equal(t, 6.0, g.Step)
}

func TestGridPolicy_ExpandProduces10x10(t *testing.T) {
	t.Parallel()

	centers := []Point{{100, 100}, {0, 0}, {320.5, 240.25}, {-17, 3}}
	for _, c := range centers {
		points := DefaultGridPolicy().Expand(c)
		require.Len(t, points, 100, "center %v", c)

		xs := map[float64]bool{}
		ys := map[float64]bool{}
		for _, p := range points {
			xs[p.X] = true
			ys[p.Y] = true
			assert.GreaterOrEqual(t, p.X, c.X-30)
			assert.Less(t, p.X, c.X+30, "upper x bound is open")
			assert.GreaterOrEqual(t, p.Y, c.Y-30)
			assert.Less(t, p.Y, c.Y+30, "upper y bound is open")
		}
		assert.Len(t, xs, 10)
		assert.Len(t, ys, 10)
	}
}

func TestGridPolicy_ExpandLayout(t *testing.T) {
	t.Parallel()

	points := DefaultGridPolicy().Expand(Point{X: 100, Y: 100})
	require.Len(t, points, 100)

	// Row-major from the top-left corner.
	assert.Equal(t, Point{X: 70, Y: 70}, points[0])
	assert.Equal(t, Point{X: 76, Y: 70}, points[1])
	assert.Equal(t, Point{X: 124, Y: 70}, points[9])
	assert.Equal(t, Point{X: 70, Y: 76}, points[10])
	assert.Equal(t, Point{X: 124, Y: 124}, points[99])

	for _, p := range points {
		assert.NotEqual(t, 130.0, p.X)
		assert.NotEqual(t, 130.0, p.Y)
	}
}

func TestGridPolicy_Deterministic(t *testing.T) {
	t.Parallel()

	g := DefaultGridPolicy()
	assert.Equal(t, g.Expand(Point{X: 42, Y: 7}), g.Expand(Point{X: 42, Y: 7}))
}

func TestGridPolicy_NonDividingStep(t *testing.T) {
	t.Parallel()

	// ceil(10/4) = 3 per axis: offsets 0, 4, 8.
	points := GridPolicy{Width: 10, Step: 4}.Expand(Point{})
	require.Len(t, points, 9)
	assert.Equal(t, Point{X: -5, Y: -5}, points[0])
	assert.Equal(t, Point{X: 3, Y: 3}, points[8])
}

func TestGridPolicy_NonPositiveStep(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GridPolicy{Width: 60, Step: 0}.Expand(Point{}))
	assert.Empty(t, GridPolicy{Width: 60, Step: -1}.Expand(Point{}))
}

func TestSinglePointPolicy(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Point{{X: 3, Y: 4}}, SinglePointPolicy{}.Expand(Point{X: 3, Y: 4}))
}
