package render

import (
	"fmt"
	"path/filepath"

	"github.com/banshee-data/pointtrack/internal/tracking"
)

// FrameWriter is a tracking.FrameSink that saves the surface to Dir every
// Every frames. It must be added to the same Controller that draws on
// Surface so the surface holds the frame being recorded.
type FrameWriter struct {
	Surface *PlotSurface
	Dir     string
	Every   uint64

	written int
}

// NewFrameWriter returns a writer saving every n frames (n < 1 means every frame).
func NewFrameWriter(surface *PlotSurface, dir string, n int) *FrameWriter {
	if n < 1 {
		n = 1
	}
	return &FrameWriter{Surface: surface, Dir: dir, Every: uint64(n)}
}

// FramePath returns the file a frame index is written to.
func (w *FrameWriter) FramePath(index uint64) string {
	return filepath.Join(w.Dir, fmt.Sprintf("frame_%06d.png", index))
}

// RecordFrame implements tracking.FrameSink.
func (w *FrameWriter) RecordFrame(r tracking.FrameResult) error {
	if w.Every == 0 || r.Index%w.Every != 0 {
		return nil
	}
	w.Surface.SetTitle(fmt.Sprintf("frame %d  points %d/%d", r.Index, r.ValidCount(), len(r.Points)))
	if err := w.Surface.Save(w.FramePath(r.Index)); err != nil {
		return err
	}
	w.written++
	return nil
}

// Written returns the number of frames saved.
func (w *FrameWriter) Written() int {
	return w.written
}
