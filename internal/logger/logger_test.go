package logger

import (
	"bytes"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects verbose output into a buffer for one test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{name: "debug", log: func() { Debug("backend resolved: %s", "cpufreq") }, want: "[DEBUG] backend resolved: cpufreq\n"},
		{name: "info", log: func() { Info("reference %d", 3600000) }, want: "[INFO] reference 3600000\n"},
		{name: "warn", log: func() { Warn("max clamped") }, want: "[WARN] max clamped\n"},
		{name: "section", log: func() { Section("Reset") }, want: "\n=== Reset ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")
	Timed("hidden")()

	assert.Zero(t, buf.Len())
}

func TestTimed(t *testing.T) {
	buf := capture(t, true)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 1500 * time.Microsecond)
	}
	t.Cleanup(func() { now = time.Now })

	done := Timed("probe")
	done()

	assert.Equal(t, "[DEBUG] probe took 1.5ms\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)
	SetOutput(io.Discard)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			SetVerbose(i%2 == 0)
			Debug("concurrent %d", i)
			_ = IsVerbose()
		}()
	}
	wg.Wait()
}
