package tracking

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingBuffer_DrainReturnsAppendOrder(t *testing.T) {
	t.Parallel()

	var b PendingBuffer
	b.Append([]Point{{1, 1}, {2, 2}})
	b.Append(nil)
	b.Append([]Point{{3, 3}})
	require.Equal(t, 3, b.Len())

	got := b.DrainAll()
	want := []Point{{1, 1}, {2, 2}, {3, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DrainAll mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, b.DrainAll(), "second drain must be empty")
	assert.Equal(t, 0, b.Len())
}

func TestPendingBuffer_EmptyDrain(t *testing.T) {
	t.Parallel()

	var b PendingBuffer
	assert.Empty(t, b.DrainAll())
}

func TestPendingBuffer_KeepsDuplicates(t *testing.T) {
	t.Parallel()

	var b PendingBuffer
	b.Append([]Point{{5, 5}})
	b.Append([]Point{{5, 5}})
	assert.Len(t, b.DrainAll(), 2)
}

func TestPendingBuffer_AppendAfterDrainIsNotAliased(t *testing.T) {
	t.Parallel()

	var b PendingBuffer
	b.Append([]Point{{1, 1}})
	first := b.DrainAll()
	b.Append([]Point{{2, 2}})

	assert.Equal(t, []Point{{1, 1}}, first)
	assert.Equal(t, []Point{{2, 2}}, b.DrainAll())
}

// TestPendingBuffer_ConcurrentAppendDrain checks that no point is lost or
// drained twice when appends race with drains.
func TestPendingBuffer_ConcurrentAppendDrain(t *testing.T) {
	t.Parallel()

	const writers, perWriter = 8, 500
	var b PendingBuffer
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				b.Append([]Point{{X: float64(w), Y: float64(i)}})
			}
		}(w)
	}

	seen := make(map[Point]int)
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	drain := func() {
		for _, p := range b.DrainAll() {
			seen[p]++
		}
	}
	for {
		select {
		case <-done:
			drain()
			require.Len(t, seen, writers*perWriter)
			for p, n := range seen {
				require.Equalf(t, 1, n, "point %v drained %d times", p, n)
			}
			return
		default:
			drain()
		}
	}
}
