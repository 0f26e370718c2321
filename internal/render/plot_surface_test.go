package render

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pointtrack/internal/tracking"
)

func TestToColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, color.NRGBA{R: 0x00, G: 0xa1, B: 0xff, A: 128}, toColor(tracking.Style{Color: 0x00a1ff, Alpha: 0.5}))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xd2, B: 0x00, A: 255}, toColor(tracking.Style{Color: 0xffd200, Alpha: 1}))
	assert.Equal(t, uint8(255), toColor(tracking.Style{Alpha: 7}).A, "alpha is clamped")
	assert.Equal(t, uint8(0), toColor(tracking.Style{Alpha: -1}).A)
}

func TestPlotSurface_CountsItems(t *testing.T) {
	t.Parallel()

	s := NewPlotSurface(640, 480)
	style := tracking.Style{LineWidth: 1, Color: 0x00ff00, Alpha: 1}

	s.DrawRects([]tracking.Rect{{X: 0, Y: 0, Width: 10, Height: 10}, {X: 5, Y: 5, Width: 1, Height: 1}}, style)
	s.DrawTriangles(
		[]tracking.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}},
		[]int{0, 1, 2, 0, 1, 9, 2}, // second triangle out of range, trailing index ignored
		style,
	)
	s.DrawVertices([]tracking.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, 2, style)
	s.DrawVertices(nil, 2, style)
	s.DrawPoint(tracking.Point{X: 3, Y: 3}, 2, tracking.Style{Fill: true, Color: 0xff0000, Alpha: 1})
	s.DrawRects([]tracking.Rect{{X: 1, Y: 1, Width: 2, Height: 2}}, tracking.Style{Fill: true, Alpha: 1})

	assert.Equal(t, 6, s.Items())
	assert.NoError(t, s.Err())

	s.Clear()
	assert.Equal(t, 0, s.Items())
}

func TestPlotSurface_YFlip(t *testing.T) {
	t.Parallel()

	s := NewPlotSurface(100, 50)
	assert.Equal(t, 50.0, s.xy(tracking.Point{X: 0, Y: 0}).Y)
	assert.Equal(t, 0.0, s.xy(tracking.Point{X: 0, Y: 50}).Y)
	assert.Equal(t, 7.0, s.xy(tracking.Point{X: 7, Y: 0}).X)
}

func TestPlotSurface_SavePNG(t *testing.T) {
	t.Parallel()

	s := NewPlotSurface(160, 120)
	s.SetTitle("frame 1")
	rs := tracking.NewRenderSelector(tracking.DefaultRenderStyles())
	rs.Render(s, tracking.FrameResult{
		DetectedFaces: []tracking.Rect{{X: 40, Y: 30, Width: 60, Height: 60}},
		MergedFaces:   []tracking.Rect{{X: 42, Y: 32, Width: 60, Height: 60}},
		Faces: []tracking.Face{{
			State:     tracking.FaceTracking,
			Vertices:  []tracking.Point{{X: 70, Y: 60}, {X: 80, Y: 60}, {X: 70, Y: 70}},
			Triangles: []int{0, 1, 2},
		}},
		Points: []tracking.Point{{X: 10, Y: 10}, {X: 500, Y: 500}},
		Valid:  []bool{true, false},
	})

	path := filepath.Join(t.TempDir(), "frames", "frame_00001.png")
	require.NoError(t, s.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.DecodeConfig(f)
	assert.NoError(t, err)
}
