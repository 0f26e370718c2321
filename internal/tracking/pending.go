package tracking

import "sync"

// PendingBuffer holds points requested by the user that have not yet been
// handed to the engine. Click handlers only Append; the frame loop is the
// sole caller of DrainAll.
type PendingBuffer struct {
	mu     sync.Mutex
	points []Point
}

// Append adds points to the tail. No deduplication, no bound.
func (b *PendingBuffer) Append(points []Point) {
	if len(points) == 0 {
		return
	}
	b.mu.Lock()
	b.points = append(b.points, points...)
	b.mu.Unlock()
}

// DrainAll returns every buffered point in insertion order and leaves the
// buffer empty. An append racing with the drain lands either in the returned
// slice or in the next drain, never both.
func (b *PendingBuffer) DrainAll() []Point {
	b.mu.Lock()
	drained := b.points
	b.points = nil
	b.mu.Unlock()
	return drained
}

// Len returns the number of points waiting for the next drain.
func (b *PendingBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.points)
}
