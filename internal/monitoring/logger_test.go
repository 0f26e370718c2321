package monitoring

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = format
	})
	Logf("Tracking %d points.", 3)
	assert.Equal(t, "Tracking %d points.", got)

	// nil installs a no-op
	SetLogger(nil)
	Logf("ignored")
	assert.Equal(t, "Tracking %d points.", got)
}

func TestSetLogWriters(t *testing.T) {
	defer SetLogWriters(log.Writer(), nil, nil)

	var ops, diag, trace bytes.Buffer
	SetLogWriters(&ops, &diag, &trace)

	Opsf("ops %d", 1)
	Diagf("diag %d", 2)
	Tracef("trace %d", 3)

	assert.Contains(t, ops.String(), "ops 1")
	assert.Contains(t, diag.String(), "diag 2")
	assert.Contains(t, trace.String(), "trace 3")
	assert.NotContains(t, ops.String(), "diag")
}

func TestSetLogWriters_NilDisables(t *testing.T) {
	defer SetLogWriters(log.Writer(), nil, nil)

	SetLogWriters(nil, nil, nil)
	// Must not panic with every stream disabled.
	Opsf("x")
	Diagf("y")
	Tracef("z")
}

func TestSetLevel(t *testing.T) {
	defer SetLogWriters(log.Writer(), nil, nil)

	tests := []struct {
		level     string
		wantDiag  bool
		wantTrace bool
	}{
		{"ops", false, false},
		{"diag", true, false},
		{"trace", true, true},
		{"bogus", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			SetLevel(tt.level, &buf)
			Opsf("OPS")
			Diagf("DIAG")
			Tracef("TRACE")
			out := buf.String()
			assert.True(t, strings.Contains(out, "OPS"))
			assert.Equal(t, tt.wantDiag, strings.Contains(out, "DIAG"))
			assert.Equal(t, tt.wantTrace, strings.Contains(out, "TRACE"))
		})
	}
}
