package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bmcalindin/wlog/internal/engine"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"seconds rounded", 1234567890 * time.Nanosecond, "1.23s"},
		{"milliseconds rounded", 4567890 * time.Nanosecond, "4.57ms"},
		{"microseconds untouched", 450 * time.Microsecond, "450µs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.d); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestSummary_PrintIncludesCounts(t *testing.T) {
	results := engine.NewResults()
	results.Record(5*time.Millisecond, true, 128)
	results.Record(7*time.Millisecond, false, 0)
	results.Finish()

	var buf bytes.Buffer
	NewSummary(&buf, NoColorScheme()).Print(results)

	out := buf.String()
	for _, want := range []string{results.RunID, "Requests", "1 / 1", "Bytes received", "Latency p99"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestNoColorScheme_EmitsNoEscapes(t *testing.T) {
	s := NoColorScheme()
	if out := s.Success.Sprint("ok"); out != "ok" {
		t.Errorf("Sprint = %q, want plain text", out)
	}
}
