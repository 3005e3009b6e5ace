package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// captureStatus redirects status output to a buffer for the test.
// Read the buffer only after the spinner has stopped.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = prev })
	return &buf
}

func TestSpinnerWritesToStatusOut(t *testing.T) {
	buf := captureStatus(t)

	s := newSpinner("Rendering SVG...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Rendering SVG...")
	assert.True(t, strings.HasSuffix(out, "\r"), "stop should clear the line, got %q", out)
	assert.False(t, s.Cancelled())
}

func TestSpinnerStopWithMessage(t *testing.T) {
	tests := []struct {
		name string
		stop func(*Spinner)
		want string
	}{
		{"success", func(s *Spinner) { s.StopWithSuccess("Rendered SVG") }, "Rendered SVG"},
		{"error", func(s *Spinner) { s.StopWithError("SVG rendering failed") }, "SVG rendering failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStatus(t)

			s := newSpinner("Rendering SVG...")
			s.Start()
			tt.stop(s)

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestSpinnerCancelledByContext(t *testing.T) {
	captureStatus(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Rendering SVG...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled())
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureStatus(t)

	s := newSpinner("Rendering SVG...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}
