package tracking

import (
	"fmt"

	"github.com/banshee-data/pointtrack/internal/monitoring"
)

// CountReporter emits a notification whenever the tracked point count
// differs from the last one it saw. It starts at zero.
type CountReporter struct {
	last   int
	notify func(msg string)
}

// NewCountReporter returns a reporter that sends notifications to notify,
// or to monitoring.Logf when notify is nil.
func NewCountReporter(notify func(msg string)) *CountReporter {
	if notify == nil {
		notify = func(msg string) { monitoring.Logf("%s", msg) }
	}
	return &CountReporter{notify: notify}
}

// Observe records count and reports whether a notification was emitted.
func (r *CountReporter) Observe(count int) bool {
	if count == r.last {
		return false
	}
	r.last = count
	r.notify(fmt.Sprintf("Tracking %d points.", count))
	return true
}

// Last returns the most recently observed count.
func (r *CountReporter) Last() int {
	return r.last
}
