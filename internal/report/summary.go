// Package report summarises recorded tracking sessions.
package report

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/pointtrack/internal/storage/sqlite"
)

// Summary aggregates the frame statistics of one session.
type Summary struct {
	SessionID     string  `json:"session_id"`
	Frames        int     `json:"frames"`
	TotalInjected int     `json:"total_injected"`
	MaxTracked    int     `json:"max_tracked"`
	FinalTracked  int     `json:"final_tracked"`
	MeanTracked   float64 `json:"mean_tracked"`
	StdDevTracked float64 `json:"stddev_tracked"`
	MeanValid     float64 `json:"mean_valid"`
	Notifications int     `json:"notifications"`
	// FaceTrackingFrames counts frames with at least one tracked face.
	FaceTrackingFrames int `json:"face_tracking_frames"`
}

// Summarize computes a Summary from stats in frame order.
func Summarize(sessionID string, stats []sqlite.FrameStat) Summary {
	s := Summary{SessionID: sessionID, Frames: len(stats)}
	if len(stats) == 0 {
		return s
	}

	tracked := make([]float64, len(stats))
	valid := make([]float64, len(stats))
	for i, fs := range stats {
		tracked[i] = float64(fs.Tracked)
		valid[i] = float64(fs.Valid)
		s.TotalInjected += fs.Injected
		if fs.Tracked > s.MaxTracked {
			s.MaxTracked = fs.Tracked
		}
		if fs.Notified {
			s.Notifications++
		}
		if fs.FacesTracking > 0 {
			s.FaceTrackingFrames++
		}
	}
	s.FinalTracked = stats[len(stats)-1].Tracked
	s.MeanTracked = stat.Mean(tracked, nil)
	s.MeanValid = stat.Mean(valid, nil)
	if len(tracked) > 1 {
		s.StdDevTracked = stat.StdDev(tracked, nil)
	}
	return s
}

// WriteText writes a human readable rendition of s.
func (s Summary) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"session %s\n  frames:        %d\n  injected:      %d\n  tracked:       final=%d max=%d mean=%.1f sd=%.1f\n  valid (mean):  %.1f\n  notifications: %d\n  face frames:   %d\n",
		s.SessionID, s.Frames, s.TotalInjected,
		s.FinalTracked, s.MaxTracked, s.MeanTracked, s.StdDevTracked,
		s.MeanValid, s.Notifications, s.FaceTrackingFrames,
	)
	return err
}
