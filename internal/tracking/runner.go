package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/banshee-data/pointtrack/internal/monitoring"
	"github.com/banshee-data/pointtrack/internal/timeutil"
)

// Runner is the frame-loop driver that owns a Controller. Every tick it
// delivers pending interactions through BeforeFrame and then runs one frame.
type Runner struct {
	Controller *Controller
	Clock      timeutil.Clock // nil uses the real clock
	FrameRate  float64        // frames per second, must be > 0
	MaxFrames  uint64         // 0 runs until ctx is done

	// BeforeFrame, when set, is called with the index of the frame about to
	// run. Interaction sources hooked to the loop fire their clicks here.
	BeforeFrame func(frame uint64)
}

// Run drives frames until MaxFrames is reached or ctx is cancelled, and
// returns the number of frames it ran.
func (r *Runner) Run(ctx context.Context) (uint64, error) {
	if r.Controller == nil {
		return 0, fmt.Errorf("runner has no controller")
	}
	if r.FrameRate <= 0 {
		return 0, fmt.Errorf("frame rate must be positive, got %g", r.FrameRate)
	}
	clock := r.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	interval := time.Duration(float64(time.Second) / r.FrameRate)
	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	start := clock.Now()
	var ran uint64
	for r.MaxFrames == 0 || ran < r.MaxFrames {
		select {
		case <-ctx.Done():
			monitoring.Diagf("[Runner] stopped after %d frames: %v", ran, ctx.Err())
			return ran, ctx.Err()
		case <-ticker.C():
		}

		if r.BeforeFrame != nil {
			r.BeforeFrame(r.Controller.Frames())
		}
		r.Controller.OnFrame()
		ran++
	}

	monitoring.Diagf("[Runner] completed %d frames in %v", ran, clock.Now().Sub(start))
	return ran, nil
}
