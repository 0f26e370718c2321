package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountReporter_EmitsOnlyOnChange(t *testing.T) {
	t.Parallel()

	var m messages
	r := NewCountReporter(m.notify)

	assert.False(t, r.Observe(0), "initial count is zero")
	assert.True(t, r.Observe(100))
	assert.False(t, r.Observe(100))
	assert.False(t, r.Observe(100))
	assert.True(t, r.Observe(97))
	assert.True(t, r.Observe(0))

	assert.Equal(t, []string{
		"Tracking 100 points.",
		"Tracking 97 points.",
		"Tracking 0 points.",
	}, m.got)
	assert.Equal(t, 0, r.Last())
}

func TestCountReporter_DefaultNotifyDoesNotPanic(t *testing.T) {
	r := NewCountReporter(nil)
	assert.True(t, r.Observe(1))
}
