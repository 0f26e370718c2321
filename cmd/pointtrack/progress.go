package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/banshee-data/pointtrack/internal/tracking"
)

// progressSink advances a terminal progress bar once per frame.
type progressSink struct {
	bar *progressbar.ProgressBar
}

// newProgressSink draws to w. A total of 0 frames shows a spinner.
func newProgressSink(w io.Writer, total uint64) *progressSink {
	n := int(total)
	if total == 0 {
		n = -1
	}
	bar := progressbar.NewOptions(n,
		progressbar.OptionSetDescription("tracking"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
	)
	return &progressSink{bar: bar}
}

// RecordFrame implements tracking.FrameSink.
func (p *progressSink) RecordFrame(r tracking.FrameResult) error {
	p.bar.Describe(fmt.Sprintf("tracking %d points", len(r.Points)))
	return p.bar.Add(1)
}

func (p *progressSink) Finish() error {
	return p.bar.Finish()
}
