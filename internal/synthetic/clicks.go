package synthetic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/pointtrack/internal/tracking"
)

// Click is a primary-button click scheduled before a given frame.
type Click struct {
	Frame uint64
	At    tracking.Point
}

// ParseClick parses "x,y@frame". The "@frame" suffix is optional and
// defaults to frame 0.
func ParseClick(s string) (Click, error) {
	var c Click
	coords := strings.TrimSpace(s)
	if at := strings.IndexByte(coords, '@'); at >= 0 {
		frame, err := strconv.ParseUint(strings.TrimSpace(coords[at+1:]), 10, 64)
		if err != nil {
			return Click{}, fmt.Errorf("invalid click frame in %q: %w", s, err)
		}
		c.Frame = frame
		coords = coords[:at]
	}

	parts := strings.Split(coords, ",")
	if len(parts) != 2 {
		return Click{}, fmt.Errorf("invalid click %q, expected x,y[@frame]", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Click{}, fmt.Errorf("invalid click x in %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Click{}, fmt.Errorf("invalid click y in %q: %w", s, err)
	}
	c.At = tracking.Point{X: x, Y: y}
	return c, nil
}

// ScriptedClicks is a tracking.InteractionSource that replays a fixed list
// of clicks as the frame loop reaches them.
type ScriptedClicks struct {
	clicks   []Click
	handlers []func(tracking.Point)
}

// NewScriptedClicks returns a source that will deliver clicks.
func NewScriptedClicks(clicks ...Click) *ScriptedClicks {
	return &ScriptedClicks{clicks: clicks}
}

// OnClick implements tracking.InteractionSource.
func (s *ScriptedClicks) OnClick(handler func(tracking.Point)) {
	s.handlers = append(s.handlers, handler)
}

// Fire delivers every click scheduled for frame and returns how many fired.
func (s *ScriptedClicks) Fire(frame uint64) int {
	fired := 0
	for _, c := range s.clicks {
		if c.Frame != frame {
			continue
		}
		for _, h := range s.handlers {
			h(c.At)
		}
		fired++
	}
	return fired
}
