package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/pointtrack/internal/storage/sqlite"
)

// WriteSessionChart renders an HTML line chart of tracked and valid point
// counts per frame.
func WriteSessionChart(w io.Writer, sessionID string, stats []sqlite.FrameStat) error {
	frames := make([]string, 0, len(stats))
	tracked := make([]opts.LineData, 0, len(stats))
	valid := make([]opts.LineData, 0, len(stats))
	injected := make([]opts.LineData, 0, len(stats))
	for _, fs := range stats {
		frames = append(frames, strconv.FormatUint(fs.FrameIdx, 10))
		tracked = append(tracked, opts.LineData{Value: fs.Tracked})
		valid = append(valid, opts.LineData{Value: fs.Valid})
		injected = append(injected, opts.LineData{Value: fs.Injected})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Point Tracking Session", Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Tracked points", Subtitle: fmt.Sprintf("session=%s frames=%d", sessionID, len(stats))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "points", NameLocation: "middle", NameGap: 40}),
	)
	line.SetXAxis(frames).
		AddSeries("tracked", tracked).
		AddSeries("valid", valid).
		AddSeries("injected", injected, charts.WithLineChartOpts(opts.LineChart{Step: "end"}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render session chart: %w", err)
	}
	return nil
}
